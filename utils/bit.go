package utils

// HasFlag returns whether given flags include the given bitflag.
func HasFlag(flags uint64, flag uint32) bool {
	return flags&(1<<flag) > 0
}

// HasBit returns whether the given bit is set in an 8-bit flag set.
func HasBit(flags uint8, bit uint8) bool {
	return flags&(1<<bit) != 0
}

// SetBit returns flags with the given bit set or cleared.
func SetBit(flags uint8, bit uint8, on bool) uint8 {
	if on {
		return flags | 1<<bit
	}
	return flags &^ (1 << bit)
}
