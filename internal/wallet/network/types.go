package network

import "context"

// Network describes a chain the wallet can talk to.
type Network struct {
	ID               string `json:"id"`
	ChainID          string `json:"chainId"`
	Name             string `json:"name"`
	RPCURL           string `json:"rpcUrl"`
	Symbol           string `json:"symbol"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty"`
	IsMainnet        bool   `json:"isMainnet,omitempty"`
	IsTestnet        bool   `json:"isTestnet,omitempty"`
	IsDefault        bool   `json:"isDefault,omitempty"`
	Category         string `json:"category,omitempty"`
}

// builtIn reports whether the network ships with the wallet and is
// therefore immutable.
func (n Network) builtIn() bool {
	return n.IsDefault || n.IsMainnet || n.IsTestnet
}

// AddParams are the caller-supplied fields of a custom network.
type AddParams struct {
	ChainID          string
	Name             string
	RPCURL           string
	Symbol           string
	BlockExplorerURL string
}

// Service manages the set of known networks: a fixed built-in list
// merged with user-added custom networks persisted to the store.
type Service interface {
	// Initialize loads custom networks from the store and merges them
	// with the built-in list.
	Initialize(ctx context.Context) error

	// Networks returns all known networks.
	Networks(ctx context.Context) []Network

	// Add registers a custom network. Fails on a duplicate chain id.
	Add(ctx context.Context, params AddParams) (Network, error)

	// Update modifies a custom network. Built-in networks are immutable.
	Update(ctx context.Context, id string, params AddParams) (Network, error)

	// Remove deletes a custom network. Built-in networks cannot be removed.
	Remove(ctx context.Context, id string) error

	// ByID returns the network with the given id.
	ByID(ctx context.Context, id string) (Network, bool)

	// ByChainID returns the network with the given chain id.
	ByChainID(ctx context.Context, chainID string) (Network, bool)

	// Default returns the primary mainnet network.
	Default(ctx context.Context) Network

	// Mainnets, Testnets and Customs return the respective subsets.
	Mainnets(ctx context.Context) []Network
	Testnets(ctx context.Context) []Network
	Customs(ctx context.Context) []Network
}
