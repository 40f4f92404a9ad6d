package providers

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ggonzalez94/quoter-cli/internal/model"
)

type Provider interface {
	Info() model.ProviderInfo
}

// AMMQuote is the full result tuple of a concentrated-liquidity path quote.
// Amount is the quoted counter-amount: amount out for exact-input quotes,
// amount in for exact-output quotes. The per-hop slices run in path order.
type AMMQuote struct {
	Amount                  *big.Int
	SqrtPriceX96After       []*big.Int
	InitializedTicksCrossed []uint32
	GasEstimate             *big.Int
}

// AMMQuoter simulates swaps along an encoded multi-hop pool path.
// Exact-output quotes take the path in reverse hop order. Path
// well-formedness is the provider's concern; malformed paths surface as
// provider failures.
type AMMQuoter interface {
	Provider
	QuoteExactInput(ctx context.Context, path []byte, amountIn *big.Int) (AMMQuote, error)
	QuoteExactOutput(ctx context.Context, reversedPath []byte, amountOut *big.Int) (AMMQuote, error)
}

// VaultPreviewer simulates vault share/asset conversions at the current
// exchange rate. The vault address is supplied per call; no balances move.
type VaultPreviewer interface {
	Provider
	PreviewDeposit(ctx context.Context, vault common.Address, assets *big.Int) (*big.Int, error)
	PreviewMint(ctx context.Context, vault common.Address, shares *big.Int) (*big.Int, error)
	PreviewWithdraw(ctx context.Context, vault common.Address, assets *big.Int) (*big.Int, error)
	PreviewRedeem(ctx context.Context, vault common.Address, shares *big.Int) (*big.Int, error)
}

// BatchSwapStep references assets by index into the batch asset list. A zero
// amount on an inner step means "use the previous step's output"; the venue
// resolves those itself.
type BatchSwapStep struct {
	PoolID        [32]byte
	AssetInIndex  *big.Int
	AssetOutIndex *big.Int
	Amount        *big.Int
	UserData      []byte
}

// SingleSwap is the one-hop counterpart of a batch step with assets given by
// address instead of index.
type SingleSwap struct {
	PoolID   [32]byte
	AssetIn  common.Address
	AssetOut common.Address
	Amount   *big.Int
	UserData []byte
}

// PoolQuerier simulates weighted-pool swaps. Batch queries return one signed
// delta per asset: positive deltas are owed to the venue, negative deltas
// received from it. Single queries return the delta of the counter-asset.
type PoolQuerier interface {
	Provider
	QueryBatchSwapExactIn(ctx context.Context, steps []BatchSwapStep, assets []common.Address) ([]*big.Int, error)
	QueryBatchSwapExactOut(ctx context.Context, steps []BatchSwapStep, assets []common.Address) ([]*big.Int, error)
	QuerySwapExactIn(ctx context.Context, swap SingleSwap) (*big.Int, error)
	QuerySwapExactOut(ctx context.Context, swap SingleSwap) (*big.Int, error)
}
