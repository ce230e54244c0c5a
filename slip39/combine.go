package slip39

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/gavincarr/slip39kit/internal/feistel"
	"github.com/gavincarr/slip39kit/internal/gf256"
	"github.com/gavincarr/slip39kit/internal/secure"
)

// CombineMnemonicsWithPassphrase decodes, validates and recombines a set of
// mnemonics into the original master secret.
func CombineMnemonicsWithPassphrase(mnemonics []string, passphrase []byte) ([]byte, error) {
	shares, err := decodeShares(mnemonics)
	if err != nil {
		return nil, err
	}
	return combineShares(shares, passphrase)
}

// CollateShareGroups decodes mnemonics and buckets them by group, without
// attempting recovery. The returned ShareGroups has one slot per group
// (0..group_count-1); groups the caller supplied no shares for are empty.
func CollateShareGroups(mnemonics []string) (ShareGroups, error) {
	shares, err := decodeShares(mnemonics)
	if err != nil {
		return ShareGroups{}, err
	}

	groupCount := int(shares[0].GroupCount)
	out := ShareGroups{Groups: make([][]string, groupCount)}
	for i, s := range shares {
		out.Groups[s.GroupIndex] = append(out.Groups[s.GroupIndex], mnemonics[i])
	}
	return out, nil
}

// decodeShares decodes every mnemonic and cross-validates the metadata that
// must agree across an entire split.
func decodeShares(mnemonics []string) ([]Share, error) {
	if len(mnemonics) == 0 {
		return nil, EmptyMnemonicSet
	}

	shares := make([]Share, len(mnemonics))
	for i, m := range mnemonics {
		s, err := ParseShare(m)
		if err != nil {
			return nil, err
		}
		shares[i] = s
	}

	first := shares[0]
	for _, s := range shares[1:] {
		if s.Identifier != first.Identifier ||
			s.IterationExponent != first.IterationExponent ||
			s.GroupThreshold != first.GroupThreshold ||
			s.GroupCount != first.GroupCount ||
			len(s.Value) != len(first.Value) {
			return nil, InvalidShardSet
		}
	}
	return shares, nil
}

// groupBucket holds the shares observed for one group_index.
type groupBucket struct {
	groupIndex      uint8
	memberThreshold uint8
	seen            mapset.Set[uint8]
	members         map[uint8][]byte
}

// bucketShares groups shares by group_index, enforcing a single consistent
// member_threshold and rejecting duplicate member indices within a group.
func bucketShares(shares []Share) (map[uint8]*groupBucket, error) {
	buckets := make(map[uint8]*groupBucket)
	for _, s := range shares {
		b, ok := buckets[s.GroupIndex]
		if !ok {
			b = &groupBucket{
				groupIndex:      s.GroupIndex,
				memberThreshold: s.MemberThreshold,
				seen:            mapset.NewThreadUnsafeSet[uint8](),
				members:         make(map[uint8][]byte),
			}
			buckets[s.GroupIndex] = b
		}
		if b.memberThreshold != s.MemberThreshold {
			return nil, InvalidMemberThreshold
		}
		if !b.seen.Add(s.MemberIndex) {
			return nil, DuplicateMemberIndex
		}
		b.members[s.MemberIndex] = s.Value
	}
	return buckets, nil
}

// combineShares runs the reconstruction orchestration over an
// already-decoded, already-cross-validated share set.
func combineShares(shares []Share, passphrase []byte) ([]byte, error) {
	buckets, err := bucketShares(shares)
	if err != nil {
		return nil, err
	}

	groupThreshold := int(shares[0].GroupThreshold)
	if len(buckets) < groupThreshold {
		return nil, NotEnoughGroups
	}

	var groupIndices []uint8
	for idx := range buckets {
		groupIndices = append(groupIndices, idx)
	}
	sort.Slice(groupIndices, func(i, j int) bool { return groupIndices[i] < groupIndices[j] })

	groupSharesForRecovery := make([]gf256.Share, 0, groupThreshold)
	for _, idx := range groupIndices {
		b := buckets[idx]
		if len(b.members) < int(b.memberThreshold) {
			return nil, NotEnoughMemberShards
		}

		memberShares := make([]gf256.Share, 0, len(b.members))
		for mIdx, value := range b.members {
			memberShares = append(memberShares, gf256.Share{X: mIdx, Y: value})
		}
		sort.Slice(memberShares, func(i, j int) bool { return memberShares[i].X < memberShares[j].X })

		groupSecret, err := gf256.Recover(int(b.memberThreshold), memberShares)
		if err != nil {
			return nil, ChecksumFailure
		}
		defer secure.Zero(groupSecret)

		groupSharesForRecovery = append(groupSharesForRecovery, gf256.Share{X: idx, Y: groupSecret})
		if len(groupSharesForRecovery) == groupThreshold {
			break
		}
	}

	encrypted, err := gf256.Recover(groupThreshold, groupSharesForRecovery)
	if err != nil {
		return nil, ChecksumFailure
	}
	defer secure.Zero(encrypted)

	secret := feistel.Decrypt(encrypted, passphrase, shares[0].Identifier, shares[0].IterationExponent)
	return secret, nil
}

// ValidateMnemonicsWithPassphrase recovers the secret from every minimal
// quorum-satisfying subset of g's shares and confirms they all agree,
// reporting how many combinations were checked.
func (g ShareGroups) ValidateMnemonicsWithPassphrase(passphrase []byte) ([]byte, int, error) {
	var all []string
	for _, group := range g.Groups {
		all = append(all, group...)
	}
	shares, err := decodeShares(all)
	if err != nil {
		return nil, 0, err
	}

	groupThreshold := int(shares[0].GroupThreshold)
	byGroup := make(map[uint8][]Share)
	for _, s := range shares {
		byGroup[s.GroupIndex] = append(byGroup[s.GroupIndex], s)
	}

	var groupIndices []uint8
	for idx := range byGroup {
		groupIndices = append(groupIndices, idx)
	}
	sort.Slice(groupIndices, func(i, j int) bool { return groupIndices[i] < groupIndices[j] })

	groupCombos := combinations(groupIndices, groupThreshold)

	var secret []byte
	checked := 0
	for _, groupCombo := range groupCombos {
		memberSubsetsPerGroup := make([][][]Share, 0, len(groupCombo))
		complete := true
		for _, gi := range groupCombo {
			members := byGroup[gi]
			if len(members) == 0 {
				complete = false
				break
			}
			threshold := int(members[0].MemberThreshold)
			memberSubsetsPerGroup = append(memberSubsetsPerGroup, combinations(members, threshold))
		}
		if !complete {
			continue
		}

		for _, subset := range crossProduct(memberSubsetsPerGroup) {
			got, err := combineShares(cloneShares(subset), passphrase)
			if err != nil {
				return nil, checked, err
			}
			checked++
			if secret == nil {
				secret = got
			} else if string(secret) != string(got) {
				return nil, checked, InvalidShardSet
			}
		}
	}

	if checked == 0 {
		return nil, 0, NotEnoughGroups
	}
	return secret, checked, nil
}

// crossProduct flattens one representative subset per element of
// perGroup into every combination across groups.
func crossProduct(perGroup [][][]Share) [][]Share {
	result := [][]Share{nil}
	for _, options := range perGroup {
		var next [][]Share
		for _, prefix := range result {
			for _, opt := range options {
				combo := append(append([]Share{}, prefix...), opt...)
				next = append(next, combo)
			}
		}
		result = next
	}
	return result
}

func cloneShares(shares []Share) []Share {
	out := make([]Share, len(shares))
	for i, s := range shares {
		out[i] = s
		out[i].Value = append([]byte(nil), s.Value...)
	}
	return out
}

// combinations returns every k-sized subset of items.
func combinations[T any](items []T, k int) [][]T {
	var out [][]T
	n := len(items)
	if k > n {
		return out
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]T, k)
		for i, j := range idx {
			combo[i] = items[j]
		}
		out = append(out, combo)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}
