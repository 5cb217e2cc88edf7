package seed

import (
	"crypto/sha512"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// BIP39 seed derivation parameters.
const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64

	mnemonicEntropyBits = 128 // 12 words
)

type manager struct {
	mu       sync.RWMutex
	seed     []byte
	mnemonic string
}

// NewManager creates a new seed Manager.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{}
}

func (m *manager) GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return mnemonic, nil
}

func (m *manager) ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// Initialize derives the seed per BIP39:
// seed = PBKDF2(mnemonic, "mnemonic"+password, 2048, 64, SHA512)
func (m *manager) Initialize(mnemonic string, password string) error {
	if !bip39.IsMnemonicValid(mnemonic) {
		return errors.New("invalid mnemonic phrase")
	}

	derived := pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+password),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	m.mu.Lock()
	m.seed = derived
	m.mnemonic = mnemonic
	m.mu.Unlock()

	return nil
}

// Seed returns a copy so callers cannot mutate the retained secret.
func (m *manager) Seed() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.seed == nil {
		return nil
	}

	out := make([]byte, len(m.seed))
	copy(out, m.seed)

	return out
}

func (m *manager) Mnemonic() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.mnemonic
}

func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.seed != nil
}

func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.seed {
		m.seed[i] = 0
	}
	m.seed = nil
	m.mnemonic = ""
}
