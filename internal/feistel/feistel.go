// Package feistel implements the 4-round Feistel network SLIP-39 uses to
// encrypt the master secret with a passphrase before splitting it, and to
// reverse that encryption after recombination.
package feistel

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/xdg-go/pbkdf2"
)

func newSHA256() hash.Hash {
	return sha256.New()
}

const rounds = 4

// baseIterations is the iteration count used at exponent 0; the caller's
// iteration exponent doubles it exp times, then it's quartered per round
// (iterations = 2500*2^exp/4).
const baseIterations = 2500

// salt returns the PBKDF2 salt for one round: "shamir" followed by the
// big-endian identifier and the current R half.
func salt(identifier uint16, r []byte) []byte {
	buf := make([]byte, 0, 6+2+len(r))
	buf = append(buf, "shamir"...)
	var id [2]byte
	binary.BigEndian.PutUint16(id[:], identifier)
	buf = append(buf, id[:]...)
	buf = append(buf, r...)
	return buf
}

// round computes the round function output for round i: PBKDF2-HMAC-SHA256
// keyed by the round index byte prepended to passphrase, salted by
// "shamir"||identifier||r, with iteration count derived from exp.
func round(i int, passphrase, r []byte, identifier uint16, exp uint8, dkLen int) []byte {
	password := make([]byte, 0, 1+len(passphrase))
	password = append(password, byte(i))
	password = append(password, passphrase...)

	iterations := (baseIterations << exp) / rounds
	return pbkdf2.Key(password, salt(identifier, r), iterations, dkLen, newSHA256)
}

// Encrypt runs the forward Feistel network (rounds 0..3) over masterSecret,
// split into equal L/R halves, returning the encrypted master secret.
func Encrypt(masterSecret, passphrase []byte, identifier uint16, exp uint8) []byte {
	return crypt(masterSecret, passphrase, identifier, exp, false)
}

// Decrypt runs the Feistel network in reverse (rounds 3..0), undoing
// Encrypt.
func Decrypt(encryptedMasterSecret, passphrase []byte, identifier uint16, exp uint8) []byte {
	return crypt(encryptedMasterSecret, passphrase, identifier, exp, true)
}

func crypt(data, passphrase []byte, identifier uint16, exp uint8, reverse bool) []byte {
	half := len(data) / 2
	l := append([]byte(nil), data[:half]...)
	r := append([]byte(nil), data[half:]...)

	for step := 0; step < rounds; step++ {
		i := step
		if reverse {
			i = rounds - 1 - step
		}
		f := round(i, passphrase, r, identifier, exp, half)
		newR := make([]byte, half)
		for j := 0; j < half; j++ {
			newR[j] = l[j] ^ f[j]
		}
		l, r = r, newR
	}

	out := make([]byte, len(data))
	copy(out[:half], r)
	copy(out[half:], l)
	return out
}
