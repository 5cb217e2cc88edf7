package address

import (
	"fmt"
)

type service struct{}

// NewService creates a new address Service.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return service{}
}

// BIP44Path returns the fixed EVM derivation path for an account index.
func (service) BIP44Path(accountIndex int) string {
	return fmt.Sprintf("m/44'/60'/0'/0/%d", accountIndex)
}
