// Package secure provides the zeroization helper that generation and
// recombination use to clear encrypted master secrets and group/member share
// values once they are no longer needed. Passphrases, the caller's master
// secret, decoded share values, Feistel round intermediates and the secret
// returned by recombination are not zeroed.
package secure

// Zero overwrites buf with zeros in place. Callers defer it immediately
// after allocating a buffer that will hold secret material, so the buffer
// is cleared whether the surrounding function returns an error or not.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// ZeroAll zeros every buffer in bufs, for the common case of cleaning up a
// whole batch of shares or round intermediates in one deferred call.
func ZeroAll(bufs ...[]byte) {
	for _, b := range bufs {
		Zero(b)
	}
}
