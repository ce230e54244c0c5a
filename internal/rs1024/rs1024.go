// Package rs1024 implements the RS1024 checksum: a Reed-Solomon code over
// GF(1024) used to generate and verify the trailing three checksum words of
// a SLIP-39 mnemonic.
package rs1024

// customization is "shamir" encoded as 10-bit words, used to seed the
// checksum state so that mnemonics from unrelated protocols don't
// accidentally validate.
var customization = [6]uint16{115, 104, 97, 109, 105, 114}

// gen holds the ten 30-bit generator masks XORed into the checksum state
// whenever the corresponding bit of the top 10 bits of state is set.
var gen = [10]uint32{
	0x00E0E040,
	0x00CE0091,
	0x009C1F2A,
	0x006C5A95,
	0x00C25E0F,
	0x00980C92,
	0x00471CC3,
	0x001ADD09,
	0x003A2076,
	0x004ABD25,
}

func polymodStep(state uint32, value uint16) uint32 {
	top := state >> 20
	state = (state&0xFFFFF)<<10 ^ uint32(value)
	for i := 0; i < 10; i++ {
		if (top>>uint(i))&1 != 0 {
			state ^= gen[i]
		}
	}
	return state
}

// polymod processes the customization prefix followed by values and
// returns the final checksum state.
func polymod(values []uint16) uint32 {
	state := uint32(1)
	for _, w := range customization {
		state = polymodStep(state, w)
	}
	for _, w := range values {
		state = polymodStep(state, w)
	}
	return state
}

// ChecksumLength is the number of trailing words RS1024 appends.
const ChecksumLength = 3

// Create computes the 3 checksum words for data such that
// Verify(append(data, checksum...)) succeeds.
func Create(data []uint16) [ChecksumLength]uint16 {
	padded := make([]uint16, len(data)+ChecksumLength)
	copy(padded, data)
	state := polymod(padded) ^ 1

	var checksum [ChecksumLength]uint16
	for i := range checksum {
		checksum[i] = uint16((state >> uint(10*(ChecksumLength-1-i))) & 1023)
	}
	return checksum
}

// Verify reports whether the trailing ChecksumLength words of mnemonic are
// a valid RS1024 checksum over the preceding words.
func Verify(mnemonic []uint16) bool {
	return polymod(mnemonic) == 1
}
