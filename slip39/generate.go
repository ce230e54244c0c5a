package slip39

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/gavincarr/slip39kit/internal/feistel"
	"github.com/gavincarr/slip39kit/internal/gf256"
	"github.com/gavincarr/slip39kit/internal/secure"
)

// MemberGroupParameters describes one group's split policy: how many
// members it has and how many of them must agree, plus an optional
// per-member password array (length 0 or MemberCount) applied via
// EncryptShard after splitting.
type MemberGroupParameters struct {
	MemberThreshold int
	MemberCount     int
	Passwords       [][]byte
}

func (g MemberGroupParameters) validate() error {
	if g.MemberThreshold < 1 || g.MemberThreshold > 16 {
		return InvalidMemberThreshold
	}
	if g.MemberCount < 1 || g.MemberCount > 16 {
		return InvalidMemberThreshold
	}
	if g.MemberThreshold > g.MemberCount {
		return InvalidMemberThreshold
	}
	if g.MemberThreshold == 1 && g.MemberCount != 1 {
		return InvalidSingletonMember
	}
	if len(g.Passwords) != 0 && len(g.Passwords) != g.MemberCount {
		return InsufficientSpace
	}
	return nil
}

// ShareGroups holds the generated (or collated) mnemonic strings, grouped
// in the same order as the group policy they came from.
type ShareGroups struct {
	Groups [][]string
}

// GenerateMnemonicsWithPassphrase is the convenience entry point: iteration
// exponent 0 and crypto/rand.Reader as the randomness source, matching what
// most callers want.
func GenerateMnemonicsWithPassphrase(groupThreshold int, groups []MemberGroupParameters,
	masterSecret, passphrase []byte) (ShareGroups, error) {
	return GenerateMnemonics(groupThreshold, groups, masterSecret, passphrase, 0, rand.Reader)
}

// GenerateMnemonics runs the full generation orchestration: Feistel
// encryption under passphrase, group-level Shamir split, per-group
// member-level Shamir split, and mnemonic encoding of every resulting
// share.
func GenerateMnemonics(groupThreshold int, groups []MemberGroupParameters,
	masterSecret []byte, passphrase []byte, iterationExponent int, rng io.Reader) (ShareGroups, error) {

	if err := validateMasterSecret(masterSecret); err != nil {
		return ShareGroups{}, err
	}
	if err := validatePassphrase(passphrase); err != nil {
		return ShareGroups{}, err
	}
	if groupThreshold < 1 || groupThreshold > len(groups) || len(groups) > 16 {
		return ShareGroups{}, InvalidGroupThreshold
	}
	for _, g := range groups {
		if err := g.validate(); err != nil {
			return ShareGroups{}, err
		}
	}
	if iterationExponent < 0 || iterationExponent > 31 {
		return ShareGroups{}, InvalidGroupThreshold
	}

	identifier, err := randomIdentifier(rng)
	if err != nil {
		return ShareGroups{}, err
	}
	exp := uint8(iterationExponent)

	encrypted := feistel.Encrypt(masterSecret, passphrase, identifier, exp)
	defer secure.Zero(encrypted)

	groupShares, err := gf256.Split(groupThreshold, len(groups), encrypted, rng)
	if err != nil {
		return ShareGroups{}, err
	}
	defer func() {
		for _, gs := range groupShares {
			secure.Zero(gs.Y)
		}
	}()

	result := ShareGroups{Groups: make([][]string, len(groups))}
	var wordsPerShare int

	for i, g := range groups {
		memberShares, err := gf256.Split(g.MemberThreshold, g.MemberCount, groupShares[i].Y, rng)
		if err != nil {
			return ShareGroups{}, err
		}

		mnemonics := make([]string, g.MemberCount)
		for j, ms := range memberShares {
			share := Share{
				Identifier:        identifier,
				IterationExponent: exp,
				GroupIndex:        uint8(i),
				GroupThreshold:    uint8(groupThreshold),
				GroupCount:        uint8(len(groups)),
				MemberIndex:       uint8(j),
				MemberThreshold:   uint8(g.MemberThreshold),
				Value:             ms.Y,
			}

			if len(g.Passwords) != 0 {
				if err := EncryptShard(&share, g.Passwords[j]); err != nil {
					secure.Zero(ms.Y)
					return ShareGroups{}, err
				}
			}

			words, err := EncodeMnemonic(share)
			secure.Zero(share.Value)
			secure.Zero(ms.Y)
			if err != nil {
				return ShareGroups{}, err
			}

			if wordsPerShare == 0 {
				wordsPerShare = len(words)
			} else if len(words) != wordsPerShare {
				return ShareGroups{}, InsufficientSpace
			}

			mnemonics[j] = WordsToString(words)
		}
		result.Groups[i] = mnemonics
	}

	return result, nil
}

func randomIdentifier(rng io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]) & 0x7FFF, nil
}

func validateMasterSecret(secret []byte) error {
	if len(secret) < minValueLength {
		return SecretTooShort
	}
	if len(secret) > maxValueLength {
		return SecretTooLong
	}
	if len(secret)%2 != 0 {
		return InvalidSecretLength
	}
	return nil
}
