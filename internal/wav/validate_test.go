package wav

import (
	"errors"
	"testing"
)

func validHeader() Header {
	return Header{
		NumChannels:   2,
		SampleRate:    44100,
		BitsPerSample: 16,
		BlockAlign:    4,
		DataSize:      88200,
	}
}

func TestValidateAcceptsSupportedFormats(t *testing.T) {
	testCases := []struct {
		name   string
		header Header
	}{
		{"stereo 16-bit 44.1kHz", Header{NumChannels: 2, SampleRate: 44100, BitsPerSample: 16, BlockAlign: 4}},
		{"mono 16-bit 8kHz", Header{NumChannels: 1, SampleRate: 8000, BitsPerSample: 16, BlockAlign: 2}},
		{"mono 24-bit 48kHz", Header{NumChannels: 1, SampleRate: 48000, BitsPerSample: 24, BlockAlign: 3}},
		{"stereo 24-bit 22.05kHz", Header{NumChannels: 2, SampleRate: 22050, BitsPerSample: 24, BlockAlign: 6}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.header.Validate(); err != nil {
				t.Errorf("expected valid header, got %v", err)
			}
		})
	}
}

func TestValidateRejectsViolations(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*Header)
		expected error
	}{
		{"zero channels", func(h *Header) { h.NumChannels = 0 }, ErrBadChannels},
		{"three channels", func(h *Header) { h.NumChannels = 3; h.BlockAlign = 6 }, ErrBadChannels},
		{"8-bit depth", func(h *Header) { h.BitsPerSample = 8; h.BlockAlign = 2 }, ErrBadBitDepth},
		{"32-bit depth", func(h *Header) { h.BitsPerSample = 32; h.BlockAlign = 8 }, ErrBadBitDepth},
		{"sample rate too low", func(h *Header) { h.SampleRate = 7999 }, ErrBadSampleRate},
		{"sample rate too high", func(h *Header) { h.SampleRate = 48001 }, ErrBadSampleRate},
		{"block align mismatch", func(h *Header) { h.BlockAlign = 3 }, ErrBadBlockAlign},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			header := validHeader()
			tc.mutate(&header)

			err := header.Validate()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v in error chain, got %v", tc.expected, err)
			}
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("expected ErrUnsupportedFormat in error chain, got %v", err)
			}
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	header := Header{
		NumChannels:   5,
		SampleRate:    1000,
		BitsPerSample: 8,
		BlockAlign:    99,
	}

	err := header.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}

	for _, sentinel := range []error{ErrBadChannels, ErrBadBitDepth, ErrBadSampleRate, ErrBadBlockAlign} {
		if !errors.Is(err, sentinel) {
			t.Errorf("expected %v to be reported, got %v", sentinel, err)
		}
	}
}

func TestValidateIgnoresDataSize(t *testing.T) {
	// Validation is a pure function of the four format fields.
	for _, dataSize := range []uint32{0, 1, 44100, 0xFFFFFFFF} {
		header := validHeader()
		header.DataSize = dataSize

		if err := header.Validate(); err != nil {
			t.Errorf("DataSize %d changed validation outcome: %v", dataSize, err)
		}
	}
}
