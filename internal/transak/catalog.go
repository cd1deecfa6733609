package transak

// Network is a chain the widget can settle on, with the tokens offered for it on the widget page.
type Network struct {
	ID     string
	Name   string
	Tokens []string
}

var Networks = []Network{
	{ID: "ethereum", Name: "Ethereum", Tokens: []string{"ETH", "USDC", "USDT", "DAI", "WBTC", "UNI", "LINK", "AAVE"}},
	{ID: "polygon", Name: "Polygon", Tokens: []string{"MATIC", "USDC", "USDT", "DAI", "WETH"}},
	{ID: "bsc", Name: "BSC", Tokens: []string{"BNB", "USDT", "BUSD", "CAKE", "ADA"}},
	{ID: "arbitrum", Name: "Arbitrum One", Tokens: []string{"ETH", "USDC", "USDT", "ARB", "GMX"}},
	{ID: "optimism", Name: "Optimism", Tokens: []string{"ETH", "USDC", "USDT", "OP"}},
	{ID: "avalanche", Name: "Avalanche C-Chain", Tokens: []string{"AVAX", "USDC", "USDT", "JOE"}},
	{ID: "solana", Name: "Solana", Tokens: []string{"SOL", "USDC", "RAY", "SRM"}},
	{ID: "base", Name: "Base", Tokens: []string{"ETH", "USDC", "cbBTC"}},
}

var (
	FiatCurrencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "INR", "BRL", "MXN", "KRW", "SGD", "HKD", "CHF", "NOK", "SEK"}
	CountryCodes   = []string{"US", "GB", "CA", "AU", "DE", "FR", "IT", "ES", "NL", "IN", "BR", "MX", "JP", "KR", "SG", "HK"}
)

// NetworkIDs returns the identifiers of Networks, in order.
func NetworkIDs() []string {
	ids := make([]string, 0, len(Networks))
	for _, n := range Networks {
		ids = append(ids, n.ID)
	}
	return ids
}
