package slip39

import "github.com/gavincarr/slip39kit/internal/feistel"

// EncryptShard applies the Feistel passphrase encryption to a
// share's value in place, using the share's own identifier and iteration
// exponent. This lets a share be individually password-protected before
// distribution, independent of the group-level passphrase.
func EncryptShard(s *Share, password []byte) error {
	if err := validatePassphrase(password); err != nil {
		return err
	}
	s.Value = feistel.Encrypt(s.Value, password, s.Identifier, s.IterationExponent)
	return nil
}

// DecryptShard reverses EncryptShard.
func DecryptShard(s *Share, password []byte) error {
	if err := validatePassphrase(password); err != nil {
		return err
	}
	s.Value = feistel.Decrypt(s.Value, password, s.Identifier, s.IterationExponent)
	return nil
}

// validatePassphrase enforces that passphrase bytes are printable ASCII
// (32..126); an empty passphrase is allowed.
func validatePassphrase(passphrase []byte) error {
	for _, b := range passphrase {
		if b < 32 || b > 126 {
			return InvalidPassphrase
		}
	}
	return nil
}
