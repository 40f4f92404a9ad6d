package registry

// Canonical quoting endpoints per chain ID. Overridable from config; vault
// addresses are payload-carried and never appear here.
var quoteEndpointsByChainID = map[int64]struct {
	UniswapV3QuoterV2 string
	BalancerVault     string
}{
	1: {
		UniswapV3QuoterV2: "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
		BalancerVault:     "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
	},
	10: {
		UniswapV3QuoterV2: "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
		BalancerVault:     "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
	},
	137: {
		UniswapV3QuoterV2: "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
		BalancerVault:     "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
	},
	8453: {
		UniswapV3QuoterV2: "0x3d4e44Eb1374240CE5F1B871ab261CD16335B76a",
		BalancerVault:     "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
	},
	42161: {
		UniswapV3QuoterV2: "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
		BalancerVault:     "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
	},
}

func QuoteEndpoints(chainID int64) (ammQuoter string, poolVault string, ok bool) {
	endpoints, ok := quoteEndpointsByChainID[chainID]
	if !ok {
		return "", "", false
	}
	return endpoints.UniswapV3QuoterV2, endpoints.BalancerVault, true
}
