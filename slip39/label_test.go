package slip39

import (
	"bytes"
	"crypto/rand"
	"regexp"
	"testing"
)

var labelLineRE = regexp.MustCompile(`(?m)^\d{3,6} [a-z]+$`)

func TestStringLabelledFormat(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 16)
	rand.Read(secret)
	groups := []MemberGroupParameters{{MemberThreshold: 2, MemberCount: 2}}

	shares, err := GenerateMnemonics(1, groups, secret, nil, 0, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	labelled, err := shares.StringLabelled()
	if err != nil {
		t.Fatal(err)
	}

	for _, line := range bytes.Split([]byte(labelled), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if !labelLineRE.Match(line) {
			t.Errorf("line %q does not match expected label format", line)
		}
	}
}

func TestCombineLabelledSharesRoundTrip(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 16)
	rand.Read(secret)
	groups := []MemberGroupParameters{{MemberThreshold: 2, MemberCount: 2}}

	shares, err := GenerateMnemonics(1, groups, secret, nil, 0, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	labelled, err := shares.StringLabelled()
	if err != nil {
		t.Fatal(err)
	}

	recombined, err := CombineLabelledShares(labelled)
	if err != nil {
		t.Fatal(err)
	}

	var all []string
	for _, g := range recombined.Groups {
		all = append(all, g...)
	}
	got, err := CombineMnemonicsWithPassphrase(all, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, secret) {
		t.Fatalf("CombineLabelledShares round trip = %x, want %x", got, secret)
	}
}
