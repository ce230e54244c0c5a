package gf256

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"io"
)

// digestIndex and padIndex are the two reserved Shamir x-coordinates no real
// share ever uses: digestIndex carries an integrity digest over the secret,
// padIndex carries the secret itself, relocated off of the conventional x=0
// intercept so that fewer than threshold real shares reveal nothing about
// either.
const (
	digestIndex = 254
	padIndex    = 255
	digestBytes = 4
)

// ErrDigestMismatch is returned by Recover when the reconstructed digest
// share doesn't match the HMAC of the recovered secret, meaning the wrong
// combination of shares was supplied.
var ErrDigestMismatch = errors.New("gf256: digest mismatch")

// Share is one (x, y) output of Split, y holding one byte of the secret per
// position.
type Share struct {
	X byte
	Y []byte
}

// Split produces count shares of secret such that any threshold of them
// reconstruct it via Recover, and fewer reveal nothing. x-coordinates are
// assigned 0..count-1. rng supplies all randomness consumed.
//
// When threshold is 1 every share simply carries secret verbatim, matching
// the degenerate case where no quorum math is needed.
func Split(threshold, count int, secret []byte, rng io.Reader) ([]Share, error) {
	if threshold < 1 || threshold > count {
		return nil, errors.New("gf256: threshold must be between 1 and count")
	}
	if count > digestIndex {
		return nil, errors.New("gf256: count must be at most 254")
	}

	shares := make([]Share, count)

	if threshold == 1 {
		for i := 0; i < count; i++ {
			y := make([]byte, len(secret))
			copy(y, secret)
			shares[i] = Share{X: byte(i), Y: y}
		}
		return shares, nil
	}

	randomCount := threshold - 2
	base := make([]point3, 0, threshold)

	randomShares := make([][]byte, randomCount)
	for i := 0; i < randomCount; i++ {
		y := make([]byte, len(secret))
		if _, err := io.ReadFull(rng, y); err != nil {
			return nil, err
		}
		randomShares[i] = y
	}

	digestShare, err := makeDigestShare(secret, rng)
	if err != nil {
		return nil, err
	}

	for i := 0; i < randomCount; i++ {
		base = append(base, point3{x: byte(i), y: randomShares[i]})
	}
	base = append(base, point3{x: digestIndex, y: digestShare})
	base = append(base, point3{x: padIndex, y: secret})

	for i := 0; i < count; i++ {
		if i < randomCount {
			shares[i] = Share{X: byte(i), Y: randomShares[i]}
			continue
		}
		shares[i] = Share{X: byte(i), Y: interpolateBytes(base, byte(i))}
	}

	return shares, nil
}

// Recover reconstructs the secret from threshold or more shares, verifying
// the embedded digest. It returns ErrDigestMismatch if the shares don't
// agree with the digest, which signals an invalid combination of shares
// rather than a corrupt individual share.
func Recover(threshold int, shares []Share) ([]byte, error) {
	if len(shares) < threshold {
		return nil, errors.New("gf256: not enough shares")
	}
	shares = shares[:threshold]

	if threshold == 1 {
		secret := make([]byte, len(shares[0].Y))
		copy(secret, shares[0].Y)
		return secret, nil
	}

	pts := make([]point3, len(shares))
	for i, s := range shares {
		pts[i] = point3{x: s.X, y: s.Y}
	}

	secret := interpolateBytes(pts, padIndex)
	digestShare := interpolateBytes(pts, digestIndex)

	if len(digestShare) < digestBytes {
		return nil, ErrDigestMismatch
	}
	wantDigest := digestShare[:digestBytes]
	randomPart := digestShare[digestBytes:]

	gotDigest := computeDigest(randomPart, secret)
	if !hmac.Equal(wantDigest, gotDigest) {
		return nil, ErrDigestMismatch
	}

	return secret, nil
}

// makeDigestShare builds the value stored at digestIndex: a 4-byte HMAC
// digest of secret keyed by a random tail, followed by that same tail, so
// recovery can recompute and verify the digest from the share alone.
func makeDigestShare(secret []byte, rng io.Reader) ([]byte, error) {
	randomPart := make([]byte, len(secret)-digestBytes)
	if _, err := io.ReadFull(rng, randomPart); err != nil {
		return nil, err
	}
	digest := computeDigest(randomPart, secret)
	return append(digest, randomPart...), nil
}

func computeDigest(key, secret []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(secret)
	return mac.Sum(nil)[:digestBytes]
}

// point3 is one (x, y-vector) sample shared across all byte positions of a
// multi-byte secret.
type point3 struct {
	x byte
	y []byte
}

// interpolateBytes evaluates, independently for every byte position, the
// polynomial implied by pts at x.
func interpolateBytes(pts []point3, x byte) []byte {
	n := len(pts[0].y)
	out := make([]byte, n)
	byteAtPos := make([]point, len(pts))
	for pos := 0; pos < n; pos++ {
		for i, p := range pts {
			byteAtPos[i] = point{x: p.x, y: p.y[pos]}
		}
		out[pos] = interpolate(byteAtPos, x)
	}
	return out
}
