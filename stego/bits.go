package stego

// bytesToBits flattens data into one bit per element, MSB first.
func bytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

// bitsToBytes packs bits back into bytes. Callers truncate to a byte
// boundary first; a trailing partial byte is an error.
func bitsToBytes(bits []byte) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, ErrUnalignedBits
	}
	bytes := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i+j] & 1)
		}
		bytes = append(bytes, b)
	}
	return bytes, nil
}

// uintToBits writes the low width bits of v, big-endian.
func uintToBits(v uint64, width int) []byte {
	bits := make([]byte, width)
	for i := 0; i < width; i++ {
		bits[i] = byte(v>>(width-1-i)) & 1
	}
	return bits
}

func bitsToUint(bits []byte) uint64 {
	var v uint64
	for _, bit := range bits {
		v = (v << 1) | uint64(bit&1)
	}
	return v
}
