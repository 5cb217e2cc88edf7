package network

// defaultNetworks is the built-in chain list shipped with the wallet.
func defaultNetworks() []Network {
	return []Network{
		{
			ID:               "ethereum-mainnet",
			ChainID:          "0x1",
			Name:             "Ethereum Mainnet",
			RPCURL:           "https://mainnet.infura.io/v3/YOUR_INFURA_KEY",
			Symbol:           "ETH",
			BlockExplorerURL: "https://etherscan.io",
			IsMainnet:        true,
			IsDefault:        true,
			Category:         "mainnet",
		},
		{
			ID:               "polygon-mainnet",
			ChainID:          "0x89",
			Name:             "Polygon Mainnet",
			RPCURL:           "https://polygon-rpc.com",
			Symbol:           "MATIC",
			BlockExplorerURL: "https://polygonscan.com",
			IsDefault:        true,
			Category:         "mainnet",
		},
		{
			ID:               "bsc-mainnet",
			ChainID:          "0x38",
			Name:             "BSC Mainnet",
			RPCURL:           "https://bsc-dataseed.binance.org",
			Symbol:           "BNB",
			BlockExplorerURL: "https://bscscan.com",
			IsDefault:        true,
			Category:         "mainnet",
		},
		{
			ID:               "base-mainnet",
			ChainID:          "0x2105",
			Name:             "Base Mainnet",
			RPCURL:           "https://mainnet.base.org",
			Symbol:           "ETH",
			BlockExplorerURL: "https://basescan.org",
			IsDefault:        true,
			Category:         "mainnet",
		},
		{
			ID:               "linea-mainnet",
			ChainID:          "0xe708",
			Name:             "Linea Mainnet",
			RPCURL:           "https://rpc.linea.build",
			Symbol:           "ETH",
			BlockExplorerURL: "https://lineascan.build",
			IsDefault:        true,
			Category:         "mainnet",
		},
		{
			ID:               "solana-mainnet",
			ChainID:          "0x195",
			Name:             "Solana Mainnet",
			RPCURL:           "https://api.mainnet-beta.solana.com",
			Symbol:           "SOL",
			BlockExplorerURL: "https://explorer.solana.com",
			IsDefault:        true,
			Category:         "mainnet",
		},
		{
			ID:               "ethereum-sepolia",
			ChainID:          "0xaa36a7",
			Name:             "Sepolia Testnet",
			RPCURL:           "https://sepolia.infura.io/v3/YOUR_INFURA_KEY",
			Symbol:           "SepoliaETH",
			BlockExplorerURL: "https://sepolia.etherscan.io",
			IsTestnet:        true,
			IsDefault:        true,
			Category:         "testnet",
		},
		{
			ID:               "bsc-testnet",
			ChainID:          "0x61",
			Name:             "BSC Testnet",
			RPCURL:           "https://data-seed-prebsc-1-s1.binance.org:8545",
			Symbol:           "tBNB",
			BlockExplorerURL: "https://testnet.bscscan.com",
			IsTestnet:        true,
			IsDefault:        true,
			Category:         "testnet",
		},
	}
}
