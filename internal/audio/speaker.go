package audio

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"wavplay.click/internal/wav"
)

var (
	otoOnce    sync.Once
	otoContext *oto.Context
	otoErr     error
)

// initSpeaker initializes the process-wide oto context. oto permits a single
// context per process, so the first stream's sample rate and channel count
// apply for the lifetime of the process.
func initSpeaker(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		options := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}

		var ready chan struct{}
		otoContext, ready, otoErr = oto.NewContext(options)
		if otoErr == nil {
			<-ready
		}
	})
	return otoContext, otoErr
}

// SpeakerSink plays transformed PCM through the system audio device. The
// streaming engine always emits 16-bit little-endian output, which is the
// format the device player is opened with. Chunks are fed through a pipe
// that the device drains at its own pace, so Write blocks only when the
// device buffer is full.
type SpeakerSink struct {
	player *oto.Player
	pipe   *io.PipeWriter
}

// NewSpeakerSink opens the system audio device for the given header's
// sample rate and channel count.
func NewSpeakerSink(header wav.Header) (*SpeakerSink, error) {
	ctx, err := initSpeaker(int(header.SampleRate), int(header.NumChannels))
	if err != nil {
		slog.Error("failed to open audio device", "error", err)
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}

	reader, writer := io.Pipe()
	player := ctx.NewPlayer(reader)
	player.Play()

	slog.Debug("speaker sink ready",
		"sample_rate", header.SampleRate,
		"channels", header.NumChannels)

	return &SpeakerSink{player: player, pipe: writer}, nil
}

// Write feeds one transformed chunk to the device.
func (s *SpeakerSink) Write(chunk []byte) error {
	if _, err := s.pipe.Write(chunk); err != nil {
		return fmt.Errorf("audio device write failed: %w", err)
	}
	return nil
}

// Close waits for buffered audio to finish playing and releases the device
// player.
func (s *SpeakerSink) Close() error {
	s.pipe.Close()

	for s.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	slog.Debug("speaker sink closed")
	return s.player.Close()
}
