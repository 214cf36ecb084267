package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildHeader assembles a canonical 44-byte WAV header for tests
func buildHeader(channels uint16, sampleRate uint32, bitsPerSample uint16, blockAlign uint16, dataSize uint32) []byte {
	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	byteRate := sampleRate * uint32(blockAlign)
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}

func TestParseHeaderFields(t *testing.T) {
	testCases := []struct {
		name          string
		channels      uint16
		sampleRate    uint32
		bitsPerSample uint16
		blockAlign    uint16
		dataSize      uint32
	}{
		{"mono 16-bit 44.1kHz", 1, 44100, 16, 2, 88200},
		{"stereo 16-bit 48kHz", 2, 48000, 16, 4, 192000},
		{"mono 24-bit 8kHz", 1, 8000, 24, 3, 24000},
		{"stereo 24-bit 22kHz", 2, 22050, 24, 6, 132300},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := buildHeader(tc.channels, tc.sampleRate, tc.bitsPerSample, tc.blockAlign, tc.dataSize)

			header, err := ParseHeader(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("ParseHeader failed: %v", err)
			}

			if header.NumChannels != tc.channels {
				t.Errorf("NumChannels = %d, expected %d", header.NumChannels, tc.channels)
			}
			if header.SampleRate != tc.sampleRate {
				t.Errorf("SampleRate = %d, expected %d", header.SampleRate, tc.sampleRate)
			}
			if header.BitsPerSample != tc.bitsPerSample {
				t.Errorf("BitsPerSample = %d, expected %d", header.BitsPerSample, tc.bitsPerSample)
			}
			if header.BlockAlign != tc.blockAlign {
				t.Errorf("BlockAlign = %d, expected %d", header.BlockAlign, tc.blockAlign)
			}
			if header.DataSize != tc.dataSize {
				t.Errorf("DataSize = %d, expected %d", header.DataSize, tc.dataSize)
			}
		})
	}
}

func TestParseHeaderConsumesExactly44Bytes(t *testing.T) {
	raw := buildHeader(2, 44100, 16, 4, 1000)
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	reader := bytes.NewReader(append(raw, payload...))

	_, err := ParseHeader(reader)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	rest := make([]byte, 8)
	n, _ := reader.Read(rest)
	if n != len(payload) || !bytes.Equal(rest[:n], payload) {
		t.Errorf("expected payload %v to remain after header, got %v", payload, rest[:n])
	}
}

func TestParseHeaderShortInput(t *testing.T) {
	testCases := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"one byte", 1},
		{"just under header size", HeaderSize - 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := buildHeader(2, 44100, 16, 4, 1000)[:tc.size]

			_, err := ParseHeader(bytes.NewReader(raw))
			if !errors.Is(err, ErrShortHeader) {
				t.Errorf("expected ErrShortHeader, got %v", err)
			}
		})
	}
}

func TestParseHeaderNoSemanticValidation(t *testing.T) {
	// Parsing is a pure byte-to-field transcription; nonsense values
	// must come through untouched.
	raw := buildHeader(99, 1, 7, 12345, 0)

	header, err := ParseHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	if header.NumChannels != 99 || header.SampleRate != 1 || header.BitsPerSample != 7 {
		t.Errorf("parser altered field values: %+v", header)
	}
}

func TestBytesPerSample(t *testing.T) {
	if (Header{BitsPerSample: 16}).BytesPerSample() != 2 {
		t.Error("expected 2 bytes per sample for 16-bit")
	}
	if (Header{BitsPerSample: 24}).BytesPerSample() != 3 {
		t.Error("expected 3 bytes per sample for 24-bit")
	}
}
