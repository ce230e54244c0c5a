package slip39

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []Share{
		{Identifier: 0, IterationExponent: 0, GroupIndex: 0, GroupThreshold: 1, GroupCount: 1, MemberIndex: 0, MemberThreshold: 1},
		{Identifier: 32767, IterationExponent: 31, GroupIndex: 15, GroupThreshold: 16, GroupCount: 16, MemberIndex: 15, MemberThreshold: 16},
		{Identifier: 12345, IterationExponent: 7, GroupIndex: 3, GroupThreshold: 2, GroupCount: 5, MemberIndex: 9, MemberThreshold: 3},
	}

	for _, c := range cases {
		h := encodeHeader(c)
		got := decodeHeader(h)
		if got.Identifier != c.Identifier ||
			got.IterationExponent != c.IterationExponent ||
			got.GroupIndex != c.GroupIndex ||
			got.GroupThreshold != c.GroupThreshold ||
			got.GroupCount != c.GroupCount ||
			got.MemberIndex != c.MemberIndex ||
			got.MemberThreshold != c.MemberThreshold {
			t.Errorf("header round trip mismatch: got %+v, want %+v", got, c)
		}
	}
}

func TestShareValidate(t *testing.T) {
	t.Parallel()

	valid := Share{GroupThreshold: 2, GroupCount: 3, MemberThreshold: 2, Value: make([]byte, 16)}
	if err := valid.validate(); err != nil {
		t.Errorf("valid share rejected: %v", err)
	}

	tooShort := valid
	tooShort.Value = make([]byte, 14)
	if err := tooShort.validate(); err != SecretTooShort {
		t.Errorf("err = %v, want SecretTooShort", err)
	}

	tooLong := valid
	tooLong.Value = make([]byte, 34)
	if err := tooLong.validate(); err != SecretTooLong {
		t.Errorf("err = %v, want SecretTooLong", err)
	}

	odd := valid
	odd.Value = make([]byte, 17)
	if err := odd.validate(); err != InvalidSecretLength {
		t.Errorf("err = %v, want InvalidSecretLength", err)
	}

	badIndex := Share{GroupIndex: 5, GroupThreshold: 2, GroupCount: 3, MemberThreshold: 2, Value: make([]byte, 16)}
	if err := badIndex.validate(); err != InvalidGroupThreshold {
		t.Errorf("err = %v, want InvalidGroupThreshold", err)
	}
}
