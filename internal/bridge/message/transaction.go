package message

// Transaction is the dapp-side transaction object as passed to
// eth_sendTransaction. All numeric fields are 0x-prefixed hex strings.
type Transaction struct {
	From                 string `json:"from,omitempty"`
	To                   string `json:"to,omitempty"`
	Value                string `json:"value,omitempty"`
	Gas                  string `json:"gas,omitempty"`
	GasPrice             string `json:"gasPrice,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
	Nonce                string `json:"nonce,omitempty"`
	Data                 string `json:"data,omitempty"`
	ChainID              string `json:"chainId,omitempty"`
}

// Permission is a single EIP-2255 permission grant.
type Permission struct {
	ID               string   `json:"id"`
	ParentCapability string   `json:"parentCapability"`
	Caveats          []Caveat `json:"caveats"`
	Date             int64    `json:"date"`
}

// Caveat restricts a permission grant.
type Caveat struct {
	Type  string   `json:"type"`
	Value []string `json:"value"`
}
