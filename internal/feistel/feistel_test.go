package feistel

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 16)
	rand.Read(secret)

	enc := Encrypt(secret, []byte("correct horse battery staple"), 0x1234, 1)
	dec := Decrypt(enc, []byte("correct horse battery staple"), 0x1234, 1)

	if !bytes.Equal(dec, secret) {
		t.Fatalf("round trip mismatch: got %x, want %x", dec, secret)
	}
}

func TestEncryptIsPassphraseSensitive(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 16)
	rand.Read(secret)

	enc := Encrypt(secret, []byte("right passphrase"), 0x1234, 1)
	dec := Decrypt(enc, []byte("wrong passphrase"), 0x1234, 1)

	if bytes.Equal(dec, secret) {
		t.Fatal("decrypting with the wrong passphrase produced the original secret")
	}
}

func TestEncryptIsIdentifierSensitive(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 16)
	rand.Read(secret)

	enc := Encrypt(secret, []byte("pw"), 0x1234, 1)
	dec := Decrypt(enc, []byte("pw"), 0x5678, 1)

	if bytes.Equal(dec, secret) {
		t.Fatal("decrypting with the wrong identifier produced the original secret")
	}
}

func TestEmptyPassphraseIsValid(t *testing.T) {
	t.Parallel()

	secret := make([]byte, 32)
	rand.Read(secret)

	enc := Encrypt(secret, nil, 1, 0)
	dec := Decrypt(enc, nil, 1, 0)

	if !bytes.Equal(dec, secret) {
		t.Fatalf("round trip with empty passphrase mismatch: got %x, want %x", dec, secret)
	}
}
