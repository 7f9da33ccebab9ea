package quad

// bitField is a run of bits inside one uint32 word.
type bitField struct {
	shift uint32
	width uint32
}

func (f bitField) mask() uint32 {
	return (uint32(1)<<f.width - 1) << f.shift
}

func (f bitField) get(word uint32) uint32 {
	return (word & f.mask()) >> f.shift
}

func (f bitField) set(word, value uint32) uint32 {
	return word&^f.mask() | (value<<f.shift)&f.mask()
}

// at returns the i-th field of an array of equally sized fields.
func (f bitField) at(i int) bitField {
	return bitField{shift: f.shift + uint32(i)*f.width, width: f.width}
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
