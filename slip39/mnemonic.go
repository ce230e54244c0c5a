package slip39

import (
	"strings"

	"github.com/gavincarr/slip39kit/internal/bitpack"
	"github.com/gavincarr/slip39kit/internal/rs1024"
	"github.com/gavincarr/slip39kit/internal/wordlist"
)

const headerWords = 4

// minMnemonicWords is 7 + ceil(16*8/10): four header words, three checksum
// words, and the minimum 13-word payload for a 16-byte value.
const minMnemonicWords = headerWords + rs1024.ChecksumLength + 13

// EncodeMnemonic packs a share's metadata, payload and checksum into a flat
// sequence of 10-bit word indices.
func EncodeMnemonic(s Share) ([]uint16, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	h := encodeHeader(s)
	payload := bitpack.Encode(s.Value)

	data := make([]uint16, 0, headerWords+len(payload))
	data = append(data, h[:]...)
	data = append(data, payload...)

	checksum := rs1024.Create(data)

	words := make([]uint16, 0, len(data)+rs1024.ChecksumLength)
	words = append(words, data...)
	words = append(words, checksum[:]...)
	return words, nil
}

// DecodeMnemonic reverses EncodeMnemonic, verifying the RS1024 checksum and
// every structural invariant of the decoded share.
func DecodeMnemonic(words []uint16) (Share, error) {
	if len(words) < minMnemonicWords {
		return Share{}, NotEnoughMnemonicWords
	}
	if !rs1024.Verify(words) {
		return Share{}, InvalidMnemonicChecksum
	}

	payloadWords := words[headerWords : len(words)-rs1024.ChecksumLength]

	var h header
	copy(h[:], words[:headerWords])
	s := decodeHeader(h)

	value, err := bitpack.Decode(payloadWords)
	if err != nil {
		return Share{}, InvalidPadding
	}
	s.Value = value

	if err := s.validate(); err != nil {
		return Share{}, err
	}
	return s, nil
}

// WordsToString renders a word-index sequence as a space-delimited,
// lowercase mnemonic string.
func WordsToString(words []uint16) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = wordlist.Word(int(w))
	}
	return strings.Join(parts, " ")
}

// StringToWords tokenizes s on runs of non-lowercase-letter characters,
// truncates each token at wordlist.MaxWordLength, and resolves every token
// to its 10-bit index. An unresolvable token is UnknownWord.
func StringToWords(s string) ([]uint16, error) {
	tokens := tokenize(s)
	words := make([]uint16, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) > wordlist.MaxWordLength {
			tok = tok[:wordlist.MaxWordLength]
		}
		idx, ok := wordlist.Index(tok)
		if !ok {
			return nil, UnknownWord
		}
		words = append(words, uint16(idx))
	}
	return words, nil
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// ParseShare decodes a single mnemonic string directly into a Share.
func ParseShare(mnemonic string) (Share, error) {
	words, err := StringToWords(mnemonic)
	if err != nil {
		return Share{}, err
	}
	return DecodeMnemonic(words)
}
