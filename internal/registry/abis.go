package registry

// ABI fragments used by the provider adapters.
const (
	// Multi-hop path variant of the Uniswap V3 QuoterV2. quoteExactOutput takes
	// the path in reverse hop order; both are nonpayable simulations.
	UniswapV3QuoterV2ABI = `[
		{"name":"quoteExactInput","type":"function","stateMutability":"nonpayable","inputs":[{"name":"path","type":"bytes"},{"name":"amountIn","type":"uint256"}],"outputs":[{"name":"amountOut","type":"uint256"},{"name":"sqrtPriceX96AfterList","type":"uint160[]"},{"name":"initializedTicksCrossedList","type":"uint32[]"},{"name":"gasEstimate","type":"uint256"}]},
		{"name":"quoteExactOutput","type":"function","stateMutability":"nonpayable","inputs":[{"name":"path","type":"bytes"},{"name":"amountOut","type":"uint256"}],"outputs":[{"name":"amountIn","type":"uint256"},{"name":"sqrtPriceX96AfterList","type":"uint160[]"},{"name":"initializedTicksCrossedList","type":"uint32[]"},{"name":"gasEstimate","type":"uint256"}]}
	]`

	// ERC-4626 preview functions. Simulation-only views at the current
	// exchange rate; no balances move.
	ERC4626PreviewABI = `[
		{"name":"previewDeposit","type":"function","stateMutability":"view","inputs":[{"name":"assets","type":"uint256"}],"outputs":[{"name":"shares","type":"uint256"}]},
		{"name":"previewMint","type":"function","stateMutability":"view","inputs":[{"name":"shares","type":"uint256"}],"outputs":[{"name":"assets","type":"uint256"}]},
		{"name":"previewWithdraw","type":"function","stateMutability":"view","inputs":[{"name":"assets","type":"uint256"}],"outputs":[{"name":"shares","type":"uint256"}]},
		{"name":"previewRedeem","type":"function","stateMutability":"view","inputs":[{"name":"shares","type":"uint256"}],"outputs":[{"name":"assets","type":"uint256"}]}
	]`

	// Balancer V2 Vault batch swap query. Positive deltas are amounts the
	// caller would send to the vault, negative deltas amounts it would receive.
	BalancerVaultQueryABI = `[
		{"name":"queryBatchSwap","type":"function","stateMutability":"nonpayable","inputs":[{"name":"kind","type":"uint8"},{"name":"swaps","type":"tuple[]","components":[{"name":"poolId","type":"bytes32"},{"name":"assetInIndex","type":"uint256"},{"name":"assetOutIndex","type":"uint256"},{"name":"amount","type":"int256"},{"name":"userData","type":"bytes"}]},{"name":"assets","type":"address[]"},{"name":"funds","type":"tuple","components":[{"name":"sender","type":"address"},{"name":"fromInternalBalance","type":"bool"},{"name":"recipient","type":"address"},{"name":"toInternalBalance","type":"bool"}]}],"outputs":[{"name":"assetDeltas","type":"int256[]"}]}
	]`
)
