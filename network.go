package courier

// Network names an Alchemy-served chain endpoint family.
type Network string

// Supported networks.
const (
	EthMainnet     Network = "eth-mainnet"
	EthSepolia     Network = "eth-sepolia"
	PolygonMainnet Network = "polygon-mainnet"
	ArbMainnet     Network = "arb-mainnet"
	OptMainnet     Network = "opt-mainnet"
	BaseMainnet    Network = "base-mainnet"
)

// HTTPURL returns the network's HTTP JSON-RPC endpoint for the given API key.
func (n Network) HTTPURL(apiKey string) string {
	return "https://" + string(n) + ".g.alchemy.com/v2/" + apiKey
}

// WSURL returns the network's WebSocket JSON-RPC endpoint for the given API
// key.
func (n Network) WSURL(apiKey string) string {
	return "wss://" + string(n) + ".g.alchemy.com/v2/" + apiKey
}

// RESTURL returns the network's enhanced REST base URL for the given API key.
func (n Network) RESTURL(apiKey string) string {
	return "https://" + string(n) + ".g.alchemy.com/nft/v2/" + apiKey
}
