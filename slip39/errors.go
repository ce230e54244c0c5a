package slip39

// Error is the closed set of SLIP-39 failure modes. Every operation in this
// package that can fail returns one of these values (or nil), never an ad
// hoc error string, so callers can switch on it with errors.Is. The one
// exception is GenerateMnemonics, which returns a read error from its rng
// argument unchanged.
type Error int

const (
	NotEnoughMnemonicWords Error = iota + 1
	InvalidMnemonicChecksum
	SecretTooShort
	SecretTooLong
	InvalidGroupThreshold
	InvalidSingletonMember
	InsufficientSpace
	InvalidSecretLength
	InvalidPassphrase
	InvalidShardSet
	EmptyMnemonicSet
	DuplicateMemberIndex
	NotEnoughMemberShards
	InvalidMemberThreshold
	InvalidPadding
	NotEnoughGroups
	InvalidShardBuffer
	ChecksumFailure
	UnknownWord
)

var errorNames = map[Error]string{
	NotEnoughMnemonicWords:  "not enough mnemonic words",
	InvalidMnemonicChecksum: "invalid mnemonic checksum",
	SecretTooShort:          "secret too short",
	SecretTooLong:           "secret too long",
	InvalidGroupThreshold:   "invalid group threshold",
	InvalidSingletonMember:  "invalid singleton member",
	InsufficientSpace:       "insufficient space",
	InvalidSecretLength:     "invalid secret length",
	InvalidPassphrase:       "invalid passphrase",
	InvalidShardSet:         "invalid shard set",
	EmptyMnemonicSet:        "empty mnemonic set",
	DuplicateMemberIndex:    "duplicate member index",
	NotEnoughMemberShards:   "not enough member shards",
	InvalidMemberThreshold:  "invalid member threshold",
	InvalidPadding:          "invalid padding",
	NotEnoughGroups:         "not enough groups",
	InvalidShardBuffer:      "invalid shard buffer",
	ChecksumFailure:         "checksum failure",
	UnknownWord:             "unknown word",
}

func (e Error) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return "unknown slip39 error"
}
