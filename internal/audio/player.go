package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"wavplay.click/internal/volume"
	"wavplay.click/internal/wav"
)

// DefaultChunkSize is the number of bytes read from the source per loop
// iteration. A single constant governs every read; it is tunable through
// SetChunkSize and the chunk_size config field.
const DefaultChunkSize = 4096

// Common playback errors
var (
	ErrNoSink       = errors.New("no sink provided")
	ErrBadChunkSize = errors.New("chunk size must be positive")
)

// Player streams WAV files chunk by chunk to a Sink, scaling samples by its
// volume control. The output stream is always 16-bit little-endian PCM;
// 24-bit sources are downmixed during the transform.
//
// A Player may be used for sequential playbacks. Concurrent Play calls on
// the same Player are safe: each invocation owns its chunk buffers, and the
// volume control is internally synchronized.
type Player struct {
	fs        afero.Fs
	volume    *volume.Control
	chunkSize int
}

// NewPlayer creates a player on the OS filesystem with a fresh volume
// control at the default level.
func NewPlayer() *Player {
	return NewPlayerWithFilesystem(afero.NewOsFs())
}

// NewPlayerWithFilesystem creates a player reading sources from the given
// filesystem. Tests use an in-memory filesystem here.
func NewPlayerWithFilesystem(fs afero.Fs) *Player {
	slog.Debug("creating new player", "chunk_size", DefaultChunkSize)
	return &Player{
		fs:        fs,
		volume:    volume.NewControl(),
		chunkSize: DefaultChunkSize,
	}
}

// SetChunkSize overrides the per-read chunk size.
func (p *Player) SetChunkSize(size int) error {
	if size <= 0 {
		slog.Error("invalid chunk size", "size", size)
		return fmt.Errorf("%w: %d", ErrBadChunkSize, size)
	}
	p.chunkSize = size
	slog.Debug("chunk size changed", "size", size)
	return nil
}

// SetVolumeControl replaces the player's volume control, allowing several
// players to share one level.
func (p *Player) SetVolumeControl(control *volume.Control) {
	if control == nil {
		slog.Warn("ignoring nil volume control")
		return
	}
	p.volume = control
}

// SetVolume sets the playback volume, clamped to [0, 100].
func (p *Player) SetVolume(level int) {
	p.volume.Set(level)
}

// IncreaseVolume raises the playback volume by amount.
func (p *Player) IncreaseVolume(amount int) {
	p.volume.Increase(amount)
}

// DecreaseVolume lowers the playback volume by amount.
func (p *Player) DecreaseVolume(amount int) {
	p.volume.Decrease(amount)
}

// GetVolume returns the current playback volume.
func (p *Player) GetVolume() int {
	return p.volume.Get()
}

// GetInfo reads and returns the WAV header of the file at path without
// validating it or streaming any audio. The source is released before
// returning.
func (p *Player) GetInfo(path string) (wav.Header, error) {
	slog.Debug("reading WAV info", "path", path)

	file, err := p.fs.Open(path)
	if err != nil {
		slog.Error("failed to open file", "path", path, "error", err)
		return wav.Header{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	header, err := wav.ParseHeader(file)
	if err != nil {
		return wav.Header{}, err
	}

	slog.Debug("WAV info read",
		"path", path,
		"channels", header.NumChannels,
		"sample_rate", header.SampleRate,
		"bits_per_sample", header.BitsPerSample)

	return header, nil
}

// Play streams the WAV file at path to sink, blocking until the stream ends
// or fails.
func (p *Player) Play(path string, sink Sink) error {
	return p.PlayContext(context.Background(), path, sink)
}

// PlayContext streams the WAV file at path to sink. The full sequence is
// open, parse, validate, then the chunked read loop; the first failure at
// any stage terminates playback and is returned. The source is closed
// exactly once on every exit path. Cancelling ctx stops the stream between
// chunks.
func (p *Player) PlayContext(ctx context.Context, path string, sink Sink) error {
	if sink == nil {
		slog.Error("playback failed: no sink provided", "path", path)
		return ErrNoSink
	}

	slog.Debug("starting playback", "path", path, "chunk_size", p.chunkSize)

	file, err := p.fs.Open(path)
	if err != nil {
		slog.Error("failed to open file", "path", path, "error", err)
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	header, err := wav.ParseHeader(file)
	if err != nil {
		return err
	}

	if err := header.Validate(); err != nil {
		slog.Error("invalid WAV header", "path", path, "error", err)
		return err
	}

	slog.Info("playback started",
		"path", path,
		"channels", header.NumChannels,
		"sample_rate", header.SampleRate,
		"bits_per_sample", header.BitsPerSample,
		"data_size", header.DataSize,
		"volume", p.volume.Get())

	return p.stream(ctx, file, header, sink)
}

// stream runs the read/transform/emit loop. Reads need not be sample
// aligned: bytes left over after the largest whole-sample prefix are carried
// to the front of the buffer for the next iteration, so a 3-byte sample
// split across reads is never mis-decoded.
func (p *Player) stream(ctx context.Context, src io.Reader, header wav.Header, sink Sink) error {
	sampleSize := header.BytesPerSample()
	bufferSize := p.chunkSize
	if bufferSize < sampleSize {
		// The carry needs room for at least one whole sample per read.
		bufferSize = sampleSize
	}
	buffer := make([]byte, bufferSize)
	processed := make([]byte, bufferSize)

	carry := 0
	chunks := 0
	var bytesDelivered int64

	for {
		select {
		case <-ctx.Done():
			slog.Info("playback cancelled",
				"chunks_delivered", chunks,
				"bytes_delivered", bytesDelivered)
			return ctx.Err()
		default:
		}

		n, err := src.Read(buffer[carry:])
		if n > 0 {
			available := carry + n
			whole := available - available%sampleSize

			var written int
			switch header.BitsPerSample {
			case 16:
				written = scale16(processed, buffer[:whole], p.volume.Get())
			case 24:
				written = convert24to16(processed, buffer[:whole], p.volume.Get())
			}

			if written > 0 {
				if sinkErr := sink.Write(processed[:written]); sinkErr != nil {
					slog.Error("sink rejected chunk",
						"chunk", chunks,
						"bytes_delivered", bytesDelivered,
						"error", sinkErr)
					return fmt.Errorf("sink write failed: %w", sinkErr)
				}
				chunks++
				bytesDelivered += int64(written)
			}

			carry = available - whole
			if carry > 0 {
				copy(buffer, buffer[whole:available])
			}
		}

		if err != nil {
			if err == io.EOF {
				if carry > 0 {
					slog.Warn("discarding trailing partial sample", "bytes", carry)
				}
				slog.Info("playback completed",
					"chunks_delivered", chunks,
					"bytes_delivered", bytesDelivered)
				return nil
			}
			slog.Error("read failed during playback", "error", err)
			return fmt.Errorf("read failed: %w", err)
		}
	}
}
