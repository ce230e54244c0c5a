package slip39

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// String renders every mnemonic in g, one per line, groups separated by a
// blank line.
func (g ShareGroups) String() string {
	var b strings.Builder
	for i, group := range g.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, m := range group {
			b.WriteString(m)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// StringLabelled flattens every word of every mnemonic in g into a single
// numbered list, one "<label> <word>" pair per line, so the words can be
// transcribed or engraved independently of which share or group they
// belong to. The label is the share's 1-based number followed by the word's
// 1-based position within that share as two digits, formatted
// "<share><position>" to stay within 3-6 digits (e.g. share 1, word 7 -> "107").
func (g ShareGroups) StringLabelled() (string, error) {
	var b strings.Builder
	shareNum := 0
	for _, group := range g.Groups {
		for _, m := range group {
			shareNum++
			words, err := StringToWords(m)
			if err != nil {
				return "", err
			}
			for pos, w := range words {
				label := fmt.Sprintf("%d%02d", shareNum, pos+1)
				fmt.Fprintf(&b, "%s %s\n", label, wordForIndex(w))
			}
		}
	}
	return b.String(), nil
}

// CombineLabelledShares reverses StringLabelled's flattening: given the
// label/word lines (in any order), it regroups them back into whole
// mnemonics by label prefix (the share number) and returns them collated by
// CollateShareGroups (one slot per group), ready for
// CombineMnemonicsWithPassphrase or validation.
func CombineLabelledShares(text string) (ShareGroups, error) {
	byShare := make(map[int][]labelledWord)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return ShareGroups{}, InvalidShardBuffer
		}
		label, word := fields[0], fields[1]
		if len(label) < 3 || len(label) > 6 {
			return ShareGroups{}, InvalidShardBuffer
		}
		n, err := strconv.Atoi(label)
		if err != nil {
			return ShareGroups{}, InvalidShardBuffer
		}
		shareNum := n / 100
		pos := n % 100
		byShare[shareNum] = append(byShare[shareNum], labelledWord{pos: pos, word: word})
	}

	shareNums := make([]int, 0, len(byShare))
	for n := range byShare {
		shareNums = append(shareNums, n)
	}
	sort.Ints(shareNums)

	mnemonics := make([]string, 0, len(shareNums))
	for _, n := range shareNums {
		words := byShare[n]
		sort.Slice(words, func(i, j int) bool { return words[i].pos < words[j].pos })
		tokens := make([]string, len(words))
		for i, lw := range words {
			tokens[i] = lw.word
		}
		mnemonics = append(mnemonics, strings.Join(tokens, " "))
	}

	return CollateShareGroups(mnemonics)
}

type labelledWord struct {
	pos  int
	word string
}

func wordForIndex(idx uint16) string {
	return WordsToString([]uint16{idx})
}
