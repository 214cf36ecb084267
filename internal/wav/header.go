package wav

import (
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
)

// HeaderSize is the canonical minimal WAV header length. The parser reads
// exactly this many bytes; PCM data is expected to start immediately after.
const HeaderSize = 44

// Common parse and validation errors
var (
	ErrShortHeader       = errors.New("truncated WAV header")
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

// Header holds the format fields extracted from a WAV file header.
// A freshly parsed Header carries no guarantees; call Validate before
// using it to drive playback.
type Header struct {
	NumChannels   uint16 // Interleaved channel count
	SampleRate    uint32 // Samples per second per channel, in Hz
	BitsPerSample uint16 // Bit depth of a single sample
	BlockAlign    uint16 // Bytes per audio frame across all channels
	DataSize      uint32 // Declared byte length of the PCM payload
}

// BytesPerSample returns the byte width of a single sample.
func (h Header) BytesPerSample() int {
	return int(h.BitsPerSample) / 8
}

// ParseHeader consumes exactly HeaderSize bytes from reader and transcribes
// the little-endian fields at their canonical offsets. No semantic validation
// is performed here.
//
// Fields are read positionally rather than by walking RIFF sub-chunks, so
// files with extra metadata chunks before "data" are not supported. This
// matches the minimal canonical layout only.
func ParseHeader(reader io.Reader) (Header, error) {
	slog.Debug("parsing WAV header")

	var raw [HeaderSize]byte
	if _, err := io.ReadFull(reader, raw[:]); err != nil {
		slog.Error("failed to read WAV header", "error", err)
		return Header{}, ErrShortHeader
	}

	header := Header{
		NumChannels:   binary.LittleEndian.Uint16(raw[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(raw[24:28]),
		BlockAlign:    binary.LittleEndian.Uint16(raw[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(raw[34:36]),
		DataSize:      binary.LittleEndian.Uint32(raw[40:44]),
	}

	slog.Debug("WAV header parsed",
		"channels", header.NumChannels,
		"sample_rate", header.SampleRate,
		"bits_per_sample", header.BitsPerSample,
		"block_align", header.BlockAlign,
		"data_size", header.DataSize)

	return header, nil
}
