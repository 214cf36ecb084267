package audio

import (
	"bytes"
	"testing"
)

func encode16(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = append(out, byte(s), byte(s>>8))
	}
	return out
}

func decode16(raw []byte) []int16 {
	out := make([]int16, 0, len(raw)/2)
	for i := 0; i < len(raw)-1; i += 2 {
		out = append(out, int16(raw[i])|int16(raw[i+1])<<8)
	}
	return out
}

func TestScale16Identity(t *testing.T) {
	src := encode16(1000, -1000, 32767, -32768, 0, 1)
	dst := make([]byte, len(src))

	n := scale16(dst, src, 100)

	if n != len(src) {
		t.Errorf("expected %d bytes written, got %d", len(src), n)
	}
	if !bytes.Equal(dst, src) {
		t.Errorf("volume 100 should be an identity transform: got %v, expected %v",
			decode16(dst), decode16(src))
	}
}

func TestScale16Silence(t *testing.T) {
	src := encode16(1000, -1000, 32767, -32768, 123)
	dst := make([]byte, len(src))

	n := scale16(dst, src, 0)

	if n != len(src) {
		t.Errorf("expected %d bytes written, got %d", len(src), n)
	}
	for i, b := range dst {
		if b != 0 {
			t.Fatalf("expected all-zero output at volume 0, byte %d is %#x", i, b)
		}
	}
}

func TestScale16Truncation(t *testing.T) {
	testCases := []struct {
		name     string
		sample   int16
		level    int
		expected int16
	}{
		{"half volume positive", 1000, 50, 500},
		{"half volume negative", -1000, 50, -500},
		{"truncates toward zero", 999, 50, 499},
		{"truncates toward zero negative", -999, 50, -499},
		{"thirty percent", 1000, 30, 300},
		{"full volume", 1000, 100, 1000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := encode16(tc.sample)
			dst := make([]byte, len(src))

			scale16(dst, src, tc.level)

			got := decode16(dst)[0]
			if got != tc.expected {
				t.Errorf("scale16(%d, volume %d) = %d, expected %d",
					tc.sample, tc.level, got, tc.expected)
			}
		})
	}
}

func TestConvert24to16SignExtension(t *testing.T) {
	// 0x800001 little-endian: sign bit 23 set, two's-complement value
	// -8388607, arithmetic shift right 8 floors to -32768.
	src := []byte{0x01, 0x00, 0x80}
	dst := make([]byte, 2)

	n := convert24to16(dst, src, 100)

	if n != 2 {
		t.Fatalf("expected 2 bytes written, got %d", n)
	}
	got := decode16(dst)[0]
	if got != -32768 {
		t.Errorf("expected sign-extended sample -32768, got %d", got)
	}
}

func TestConvert24to16PositiveSample(t *testing.T) {
	// 0x001000 = 4096, shifted right 8 gives 16.
	src := []byte{0x00, 0x10, 0x00}
	dst := make([]byte, 2)

	convert24to16(dst, src, 100)

	got := decode16(dst)[0]
	if got != 16 {
		t.Errorf("expected 16, got %d", got)
	}
}

func TestConvert24to16OutputWidth(t *testing.T) {
	// Every 3 input bytes collapse to 2 output bytes.
	src := make([]byte, 12)
	dst := make([]byte, 8)

	n := convert24to16(dst, src, 100)

	if n != 8 {
		t.Errorf("expected 8 bytes written for 12 input bytes, got %d", n)
	}
}

func TestConvert24to16Silence(t *testing.T) {
	src := []byte{0x01, 0x00, 0x80, 0xFF, 0xFF, 0x7F}
	dst := make([]byte, 4)

	convert24to16(dst, src, 0)

	for i, b := range dst {
		if b != 0 {
			t.Fatalf("expected all-zero output at volume 0, byte %d is %#x", i, b)
		}
	}
}

func TestConvert24to16VolumeApplied(t *testing.T) {
	// 0x006400 = 25600, shifted right 8 gives 100; half volume gives 50.
	src := []byte{0x00, 0x64, 0x00}
	dst := make([]byte, 2)

	convert24to16(dst, src, 50)

	got := decode16(dst)[0]
	if got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
}
