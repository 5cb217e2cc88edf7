package token

// popularTokens is the curated token list per chain.
var popularTokens = map[string][]Token{
	"0x1": {
		{Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Symbol: "USDT", Name: "Tether USD", Decimals: 6, ChainID: "0x1"},
		{Address: "0xA0b86a33E6441019Faa8Ec161C7bd8D33B8f7e1e", Symbol: "USDC", Name: "USD Coin", Decimals: 6, ChainID: "0x1"},
		{Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Symbol: "LINK", Name: "ChainLink Token", Decimals: 18, ChainID: "0x1"},
		{Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Symbol: "WBTC", Name: "Wrapped BTC", Decimals: 8, ChainID: "0x1"},
		{Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Symbol: "UNI", Name: "Uniswap", Decimals: 18, ChainID: "0x1"},
	},
	"0x89": {
		{Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", Symbol: "USDT", Name: "Tether USD (PoS)", Decimals: 6, ChainID: "0x89"},
		{Address: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", Symbol: "USDC", Name: "USD Coin (PoS)", Decimals: 6, ChainID: "0x89"},
		{Address: "0x53E0bca35eC356BD5ddDFebbD1Fc0fD03FaBad39", Symbol: "LINK", Name: "ChainLink Token", Decimals: 18, ChainID: "0x89"},
	},
	"0x38": {
		{Address: "0x55d398326f99059fF775485246999027B3197955", Symbol: "USDT", Name: "Tether USD", Decimals: 18, ChainID: "0x38"},
		{Address: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", Symbol: "USDC", Name: "USD Coin", Decimals: 18, ChainID: "0x38"},
		{Address: "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", Symbol: "BUSD", Name: "Binance USD", Decimals: 18, ChainID: "0x38"},
	},
}
