// Package balancer adapts the Balancer V2 vault's queryBatchSwap to the
// engine's weighted-pool contract. Batch queries go through unchanged; single
// swaps are expressed as one-step batches, which the vault treats
// identically. Quoting never custodies funds, so fund management always names
// the quote sentinel on both sides with internal balances off.
package balancer

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/model"
	"github.com/ggonzalez94/quoter-cli/internal/providers"
	"github.com/ggonzalez94/quoter-cli/internal/registry"
)

var vaultABI = mustABI(registry.BalancerVaultQueryABI)

// quoteOnlySender is a deterministic placeholder execution context; queries
// never move funds for it.
var quoteOnlySender = common.HexToAddress("0x0000000000000000000000000000000000000001")

const (
	swapKindGivenIn  uint8 = 0
	swapKindGivenOut uint8 = 1
)

// maxInt256 bounds step amounts when an unsigned amount is negated into the
// vault's signed exact-output representation.
var maxInt256 = new(big.Int).Lsh(big.NewInt(1), 255)

type batchSwapStep struct {
	PoolId        [32]byte `abi:"poolId"`
	AssetInIndex  *big.Int `abi:"assetInIndex"`
	AssetOutIndex *big.Int `abi:"assetOutIndex"`
	Amount        *big.Int `abi:"amount"`
	UserData      []byte   `abi:"userData"`
}

type fundManagement struct {
	Sender              common.Address `abi:"sender"`
	FromInternalBalance bool           `abi:"fromInternalBalance"`
	Recipient           common.Address `abi:"recipient"`
	ToInternalBalance   bool           `abi:"toInternalBalance"`
}

type Client struct {
	caller ethereum.ContractCaller
	vault  common.Address
}

func New(caller ethereum.ContractCaller, vault common.Address) *Client {
	return &Client{caller: caller, vault: vault}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name: "balancer-vault",
		Type: "weighted-pool",
		Capabilities: []string{
			"query.batch-swap.exact-in",
			"query.batch-swap.exact-out",
			"query.swap.exact-in",
			"query.swap.exact-out",
		},
	}
}

func (c *Client) QueryBatchSwapExactIn(ctx context.Context, steps []providers.BatchSwapStep, assets []common.Address) ([]*big.Int, error) {
	return c.queryBatchSwap(ctx, swapKindGivenIn, steps, assets)
}

func (c *Client) QueryBatchSwapExactOut(ctx context.Context, steps []providers.BatchSwapStep, assets []common.Address) ([]*big.Int, error) {
	return c.queryBatchSwap(ctx, swapKindGivenOut, steps, assets)
}

func (c *Client) QuerySwapExactIn(ctx context.Context, swap providers.SingleSwap) (*big.Int, error) {
	deltas, err := c.queryBatchSwap(ctx, swapKindGivenIn, singleStep(swap, swap.Amount), []common.Address{swap.AssetIn, swap.AssetOut})
	if err != nil {
		return nil, err
	}
	return singleDelta(deltas, 1)
}

func (c *Client) QuerySwapExactOut(ctx context.Context, swap providers.SingleSwap) (*big.Int, error) {
	// Exact-output accounting carries outgoing amounts as negative values.
	if swap.Amount.Cmp(maxInt256) > 0 {
		return nil, clierr.New(clierr.CodeOverflow, fmt.Sprintf("swap amount %s exceeds signed batch range", swap.Amount))
	}
	deltas, err := c.queryBatchSwap(ctx, swapKindGivenOut, singleStep(swap, new(big.Int).Neg(swap.Amount)), []common.Address{swap.AssetIn, swap.AssetOut})
	if err != nil {
		return nil, err
	}
	return singleDelta(deltas, 0)
}

func (c *Client) queryBatchSwap(ctx context.Context, kind uint8, steps []providers.BatchSwapStep, assets []common.Address) ([]*big.Int, error) {
	packedSteps := make([]batchSwapStep, 0, len(steps))
	for _, step := range steps {
		userData := step.UserData
		if userData == nil {
			userData = []byte{}
		}
		packedSteps = append(packedSteps, batchSwapStep{
			PoolId:        step.PoolID,
			AssetInIndex:  step.AssetInIndex,
			AssetOutIndex: step.AssetOutIndex,
			Amount:        step.Amount,
			UserData:      userData,
		})
	}
	funds := fundManagement{
		Sender:              quoteOnlySender,
		FromInternalBalance: false,
		Recipient:           quoteOnlySender,
		ToInternalBalance:   false,
	}
	callData, err := vaultABI.Pack("queryBatchSwap", kind, packedSteps, assets, funds)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeInternal, "pack queryBatchSwap calldata", err)
	}
	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.vault, Data: callData}, nil)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeProvider, "batch swap query rejected", err)
	}
	decoded, err := vaultABI.Unpack("queryBatchSwap", out)
	if err != nil || len(decoded) == 0 {
		return nil, clierr.Wrap(clierr.CodeUnavailable, "decode queryBatchSwap response", err)
	}
	deltas, ok := decoded[0].([]*big.Int)
	if !ok {
		return nil, clierr.New(clierr.CodeUnavailable, "invalid asset deltas in queryBatchSwap response")
	}
	return deltas, nil
}

func singleStep(swap providers.SingleSwap, amount *big.Int) []providers.BatchSwapStep {
	return []providers.BatchSwapStep{{
		PoolID:        swap.PoolID,
		AssetInIndex:  big.NewInt(0),
		AssetOutIndex: big.NewInt(1),
		Amount:        amount,
		UserData:      swap.UserData,
	}}
}

func singleDelta(deltas []*big.Int, index int) (*big.Int, error) {
	if len(deltas) <= index {
		return nil, clierr.New(clierr.CodeUnavailable, fmt.Sprintf("expected at least %d asset deltas, got %d", index+1, len(deltas)))
	}
	return deltas[index], nil
}

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
