package seed

// Manager provides in-memory custody of the unlocked wallet secret.
// The mnemonic and derived seed only ever live here; locking the wallet
// clears both.
type Manager interface {
	// GenerateMnemonic returns a fresh BIP39 mnemonic phrase.
	GenerateMnemonic() (string, error)

	// ValidateMnemonic checks a BIP39 mnemonic phrase.
	ValidateMnemonic(mnemonic string) bool

	// Initialize derives and retains the seed for the given mnemonic.
	Initialize(mnemonic string, password string) error

	// Seed returns a copy of the seed, or nil while locked.
	Seed() []byte

	// Mnemonic returns the retained mnemonic, or "" while locked.
	Mnemonic() string

	// IsInitialized reports whether a seed is currently held.
	IsInitialized() bool

	// Clear wipes the seed and mnemonic from memory.
	Clear()
}
