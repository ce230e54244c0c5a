package main

import (
	"bytes"
	"crypto/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gavincarr/slip39kit/slip39"
)

func TestBip39ChecksumWords(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		input string
		want  []string
	}{
		{"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
			[]string{"about", "actual", "age", "alpha", "angle", "argue", "artwork", "attract", "bachelor", "bean", "behind", "blind", "bomb", "brand", "broken", "burger", "cactus", "carbon", "cereal", "cheese", "city", "click", "coach", "cool", "coyote", "cricket", "cruise", "cute", "degree", "describe", "diesel", "disagree", "donor", "drama", "dune", "edit", "enemy", "energy", "escape", "exhaust", "express", "fashion", "field", "fiscal", "flavor", "food", "fringe", "furnace", "genius", "glue", "goddess", "grocery", "hand", "high", "holiday", "huge", "illness", "inform", "insect", "jacket", "kangaroo", "knock", "lamp", "lemon", "length", "lobster", "lyrics", "marble", "mass", "member", "metal", "moment", "mouse", "near", "noise", "obey", "offer", "once", "organ", "own", "parent", "phrase", "pill", "pole", "position", "process", "project", "question", "rail", "record", "remind", "render", "return", "ritual", "rubber", "sand", "scout", "sell", "share", "shoot", "simple", "slice", "soap", "solid", "speed", "square", "stereo", "street", "sugar", "surprise", "tank", "tent", "they", "toddler", "tongue", "trade", "truly", "turtle", "umbrella", "urge", "vast", "vendor", "void", "voyage", "wear", "wife", "world", "wrap"}},
	}

	for _, tc := range tests {
		got, err := bip39ChecksumWords(strings.Fields(tc.input))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestBipCheckword(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		cmd  BipCheckwordCmd
		want string
	}{
		{BipCheckwordCmd{
			Deterministic: true,
			PartialMnemonic: []string{
				"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
		}, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about\n"},
		{BipCheckwordCmd{
			Word:          true,
			Deterministic: true,
			PartialMnemonic: []string{
				"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"},
		}, "about\n"},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		ctx := Context{
			writer:  &buf,
			verbose: 0,
		}

		err := tc.cmd.Run(&ctx)
		if err != nil {
			t.Fatal(err)
		}

		got := buf.String()
		if got != tc.want {
			t.Errorf("want %q, got %q", tc.want, got)
		}
	}
}

func TestBipValidate(t *testing.T) {
	t.Parallel()

	goodMnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	badMnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"

	for _, quiet := range []bool{true, false} {
		cmd := BipValCmd{Quiet: quiet, Seed: strings.Fields(goodMnemonic)}
		var buf bytes.Buffer
		ctx := Context{writer: &buf}
		if err := cmd.Run(&ctx); err != nil {
			t.Errorf("good mnemonic reported as invalid: %s", err)
		}
		if quiet && buf.String() != "" {
			t.Errorf("quiet mode returned output: %s", buf.String())
		}
		if !quiet && !strings.Contains(buf.String(), "good") {
			t.Errorf("non-quiet mode returned no confirmation: %s", buf.String())
		}
	}

	for _, quiet := range []bool{true, false} {
		cmd := BipValCmd{Quiet: quiet, Seed: strings.Fields(badMnemonic)}
		var buf bytes.Buffer
		ctx := Context{writer: &buf}
		if err := cmd.Run(&ctx); err == nil {
			t.Error("bad mnemonic reported as valid")
		}
		if buf.String() != "" {
			t.Errorf("invalid mnemonic produced output: %s", buf.String())
		}
	}
}

// TestBipSlip round-trips a BIP-39 mnemonic through SLIP-39 shares and back.
func TestBipSlip(t *testing.T) {
	t.Parallel()

	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	for _, passphrase := range []string{"", "TREZOR"} {
		cmd := BipSlipCmd{
			GroupThreshold: 1,
			Groups:         []string{"2of3"},
			Passphrase:     passphrase,
			Seed:           strings.Fields(mnemonic),
		}
		var buf bytes.Buffer
		ctx := Context{writer: &buf}

		if err := cmd.Run(&ctx); err != nil {
			t.Fatalf("BipSlip failed: %s", err)
		}

		shares := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(shares) != 3 {
			t.Fatalf("expected 3 shares, got %d", len(shares))
		}

		cmd2 := SlipBipCmd{Passphrase: passphrase, Shares: shares[:2]}
		buf.Reset()
		if err := cmd2.Run(&ctx); err != nil {
			t.Fatalf("SlipBip failed: %s", err)
		}

		got := buf.String()
		if strings.TrimSpace(got) != mnemonic {
			t.Errorf("round-trip mismatch - got:\n%swant:\n%s", got, mnemonic)
		}
	}
}

func generateTestShares(t *testing.T, groupThreshold int, groupstrs []string) []string {
	t.Helper()

	groups, err := parseGroups(groupstrs)
	if err != nil {
		t.Fatal(err)
	}

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		t.Fatal(err)
	}

	shareGroups, err := slip39.GenerateMnemonicsWithPassphrase(groupThreshold, groups, secret, nil)
	if err != nil {
		t.Fatal(err)
	}

	var all []string
	for _, g := range shareGroups.Groups {
		all = append(all, g...)
	}
	return all
}

func TestSlipVal_Success(t *testing.T) {
	t.Parallel()

	shares := generateTestShares(t, 1, []string{"3of5"})

	buf1 := bytes.NewBufferString(strings.Join(shares, "\n"))
	var buf2 bytes.Buffer
	cmd := SlipValCmd{}
	ctx := Context{reader: buf1, writer: &buf2}

	if err := cmd.Run(&ctx); err != nil {
		t.Fatalf("SlipVal error: %s", err)
	}

	got := buf2.String()
	if !strings.Contains(got, "good") {
		t.Errorf("unexpected output on successful sv: %s", got)
	}
}

func TestSlipVal_Failure(t *testing.T) {
	t.Parallel()

	shares := generateTestShares(t, 1, []string{"3of5"})
	// Only supply 2 of the required 3 shares.
	buf1 := bytes.NewBufferString(strings.Join(shares[:2], "\n"))
	var buf2 bytes.Buffer
	cmd := SlipValCmd{}
	ctx := Context{reader: buf1, writer: &buf2}

	if err := cmd.Run(&ctx); err == nil {
		t.Error("insufficient shares unexpectedly succeeded")
	}
}

func TestSlipLabel_RoundTrip(t *testing.T) {
	t.Parallel()

	shares := generateTestShares(t, 1, []string{"2of2"})

	buf1 := bytes.NewBufferString(strings.Join(shares, "\n"))
	var buf2 bytes.Buffer
	cmd := SlipLabelCmd{}
	ctx := Context{reader: buf1, writer: &buf2}

	if err := cmd.Run(&ctx); err != nil {
		t.Fatalf("SlipLabel error: %s", err)
	}

	words := buf2.String()
	reWords := regexp.MustCompile(`(?m)^\d{3,6} [a-z]+$`)
	for _, line := range strings.Split(strings.TrimSpace(words), "\n") {
		if !reWords.MatchString(line) {
			t.Errorf("invalid labelled word line: %q", line)
		}
	}

	cmd2 := LabelSlipCmd{}
	reader2 := bytes.NewBufferString(words)
	var buf3 bytes.Buffer
	ctx2 := Context{reader: reader2, writer: &buf3}

	if err := cmd2.Run(&ctx2); err != nil {
		t.Fatalf("LabelSlip error: %s", err)
	}

	out := strings.TrimSpace(buf3.String())
	want := strings.Join(shares, "\n")
	if out != want {
		t.Errorf("round-trip mismatch - got:\n%swant:\n%s", out, want)
	}
}

func TestSlipLabel_Failure(t *testing.T) {
	t.Parallel()

	badWords := "1 1 1\nnotreallyaword extra garbage\n"
	buf1 := bytes.NewBufferString(badWords)
	var buf2 bytes.Buffer
	cmd := LabelSlipCmd{}
	ctx := Context{reader: buf1, writer: &buf2}

	if err := cmd.Run(&ctx); err == nil {
		t.Error("LabelSlip on malformed input unexpectedly succeeded")
	}
}

func TestParseGroups(t *testing.T) {
	t.Parallel()

	groups, err := parseGroups([]string{"2of3", "1of1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].MemberThreshold != 2 || groups[0].MemberCount != 3 {
		t.Errorf("unexpected group[0]: %+v", groups[0])
	}
	if groups[1].MemberThreshold != 1 || groups[1].MemberCount != 1 {
		t.Errorf("unexpected group[1]: %+v", groups[1])
	}

	if _, err := parseGroups([]string{"bogus"}); err == nil {
		t.Error("expected error for malformed group definition")
	}
	if _, err := parseGroups([]string{"5of3"}); err == nil {
		t.Error("expected error for threshold exceeding count")
	}
}
