package wav

import (
	"errors"
	"fmt"
	"log/slog"
)

// Supported format bounds
const (
	MinSampleRate = 8000
	MaxSampleRate = 48000
	MaxChannels   = 2
)

// Per-rule validation errors. Each one unwraps to ErrUnsupportedFormat so
// callers can treat any violation uniformly while diagnostics stay specific.
var (
	ErrBadChannels   = fmt.Errorf("%w: channel count", ErrUnsupportedFormat)
	ErrBadBitDepth   = fmt.Errorf("%w: bits per sample", ErrUnsupportedFormat)
	ErrBadSampleRate = fmt.Errorf("%w: sample rate", ErrUnsupportedFormat)
	ErrBadBlockAlign = fmt.Errorf("%w: block align", ErrUnsupportedFormat)
)

// Validate checks the header against the supported playback constraints:
// 1 or 2 channels, 16 or 24 bits per sample, sample rate within
// [MinSampleRate, MaxSampleRate], and a block align consistent with the
// channel count and bit depth. All violations are reported, joined into a
// single error. A nil result means the header is safe to stream.
//
// Validate is a pure function of the four format fields; DataSize does not
// participate.
func (h Header) Validate() error {
	var violations []error

	if h.NumChannels < 1 || h.NumChannels > MaxChannels {
		slog.Error("unsupported number of channels", "channels", h.NumChannels)
		violations = append(violations, fmt.Errorf("%w: %d", ErrBadChannels, h.NumChannels))
	}

	if h.BitsPerSample != 16 && h.BitsPerSample != 24 {
		slog.Error("unsupported bits per sample", "bits_per_sample", h.BitsPerSample)
		violations = append(violations, fmt.Errorf("%w: %d", ErrBadBitDepth, h.BitsPerSample))
	}

	if h.SampleRate < MinSampleRate || h.SampleRate > MaxSampleRate {
		slog.Error("invalid sample rate", "sample_rate", h.SampleRate)
		violations = append(violations, fmt.Errorf("%w: %d", ErrBadSampleRate, h.SampleRate))
	}

	expectedAlign := h.NumChannels * (h.BitsPerSample / 8)
	if h.BlockAlign != expectedAlign {
		slog.Error("invalid block align",
			"block_align", h.BlockAlign,
			"expected", expectedAlign)
		violations = append(violations, fmt.Errorf("%w: %d (expected %d)", ErrBadBlockAlign, h.BlockAlign, expectedAlign))
	}

	if len(violations) > 0 {
		return errors.Join(violations...)
	}

	slog.Debug("WAV header validated",
		"channels", h.NumChannels,
		"sample_rate", h.SampleRate,
		"bits_per_sample", h.BitsPerSample)

	return nil
}
