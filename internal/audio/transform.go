package audio

// Sample transforms convert raw PCM bytes into volume-adjusted 16-bit PCM.
// Both paths write into a caller-provided destination buffer and perform no
// allocation; the streaming loop owns the two chunk buffers involved.

// scale16 applies the volume level to 16-bit little-endian samples.
// len(src) must be a multiple of 2; the scaled output occupies the same
// number of bytes. Returns the number of bytes written to dst.
func scale16(dst, src []byte, level int) int {
	multiplier := float32(level) / 100.0

	for i := 0; i < len(src)-1; i += 2 {
		sample := int16(src[i]) | int16(src[i+1])<<8
		sample = int16(float32(sample) * multiplier)
		dst[i] = byte(sample)
		dst[i+1] = byte(sample >> 8)
	}

	return len(src)
}

// convert24to16 collapses 3-byte little-endian samples to volume-adjusted
// 16-bit output: sign-extend from bit 23, arithmetic shift right by 8, then
// the same volume multiply as the 16-bit path. Every 3 input bytes produce
// 2 output bytes. len(src) must be a multiple of 3. Returns the number of
// bytes written to dst.
func convert24to16(dst, src []byte, level int) int {
	multiplier := float32(level) / 100.0

	written := 0
	for i := 0; i < len(src)-2; i += 3 {
		sample := int32(src[i]) | int32(src[i+1])<<8 | int32(src[i+2])<<16
		if sample&0x800000 != 0 {
			sample |= ^0xFFFFFF // sign extend from bit 23
		}

		scaled := int16(sample >> 8)
		scaled = int16(float32(scaled) * multiplier)

		dst[written] = byte(scaled)
		dst[written+1] = byte(scaled >> 8)
		written += 2
	}

	return written
}
