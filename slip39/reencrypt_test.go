package slip39

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestEncryptDecryptShardRoundTrip(t *testing.T) {
	t.Parallel()

	value := make([]byte, 16)
	rand.Read(value)
	original := append([]byte(nil), value...)

	s := &Share{Identifier: 555, IterationExponent: 2, Value: value}
	if err := EncryptShard(s, []byte("sharepass")); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(s.Value, original) {
		t.Fatal("EncryptShard did not change the value")
	}

	if err := DecryptShard(s, []byte("sharepass")); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Value, original) {
		t.Fatalf("DecryptShard() = %x, want %x", s.Value, original)
	}
}

func TestEncryptShardRejectsNonASCII(t *testing.T) {
	t.Parallel()

	s := &Share{Value: make([]byte, 16)}
	if err := EncryptShard(s, []byte("héllo")); err != InvalidPassphrase {
		t.Errorf("err = %v, want InvalidPassphrase", err)
	}
}
