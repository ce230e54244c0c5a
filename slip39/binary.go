package slip39

const binaryHeaderLength = 12

var binaryMagic = [3]byte{0x48, 0xBD, 0xFD}

// EncodeBinaryShard serializes a share to its fixed 12-byte-header binary
// form, for callers that store shares outside of mnemonic text.
func EncodeBinaryShard(s Share) ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, binaryHeaderLength+len(s.Value))
	copy(buf[0:3], binaryMagic[:])
	buf[3] = byte(s.Identifier >> 8)
	buf[4] = byte(s.Identifier)
	buf[5] = s.IterationExponent
	buf[6] = s.GroupIndex
	buf[7] = s.GroupThreshold
	buf[8] = s.GroupCount
	buf[9] = s.MemberIndex
	buf[10] = s.MemberThreshold
	buf[11] = byte(len(s.Value))
	copy(buf[binaryHeaderLength:], s.Value)
	return buf, nil
}

// DecodeBinaryShard reverses EncodeBinaryShard, rejecting a bad magic,
// insufficient length, or a value_length outside [16, 32].
func DecodeBinaryShard(buf []byte) (Share, error) {
	if len(buf) < binaryHeaderLength {
		return Share{}, InvalidShardBuffer
	}
	if buf[0] != binaryMagic[0] || buf[1] != binaryMagic[1] || buf[2] != binaryMagic[2] {
		return Share{}, InvalidShardBuffer
	}

	valueLength := int(buf[11])
	if valueLength < minValueLength {
		return Share{}, SecretTooShort
	}
	if valueLength > maxValueLength {
		return Share{}, SecretTooLong
	}
	if len(buf) < binaryHeaderLength+valueLength {
		return Share{}, InvalidShardBuffer
	}

	s := Share{
		Identifier:        uint16(buf[3])<<8 | uint16(buf[4]),
		IterationExponent: buf[5],
		GroupIndex:        buf[6],
		GroupThreshold:    buf[7],
		GroupCount:        buf[8],
		MemberIndex:       buf[9],
		MemberThreshold:   buf[10],
		Value:             append([]byte(nil), buf[binaryHeaderLength:binaryHeaderLength+valueLength]...),
	}
	if err := s.validate(); err != nil {
		return Share{}, err
	}
	return s, nil
}
