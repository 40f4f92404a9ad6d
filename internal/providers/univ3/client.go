// Package univ3 adapts the Uniswap V3 QuoterV2 contract to the engine's AMM
// quoting contract. It is a pass-through: path bytes go to the quoter as-is
// and malformed paths surface as provider failures.
package univ3

import (
	"context"
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

var quoterABI = mustABI(registry.UniswapV3QuoterV2ABI)

type Client struct {
	caller ethereum.ContractCaller
	quoter common.Address
}

func New(caller ethereum.ContractCaller, quoter common.Address) *Client {
	return &Client{caller: caller, quoter: quoter}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name: "univ3-quoter",
		Type: "amm",
		Capabilities: []string{
			"quote.exact-input",
			"quote.exact-output",
		},
	}
}

func (c *Client) QuoteExactInput(ctx context.Context, path []byte, amountIn *big.Int) (providers.AMMQuote, error) {
	return c.quote(ctx, "quoteExactInput", path, amountIn)
}

// QuoteExactOutput expects the path in reverse hop order, matching the
// quoter contract's calling convention.
func (c *Client) QuoteExactOutput(ctx context.Context, reversedPath []byte, amountOut *big.Int) (providers.AMMQuote, error) {
	return c.quote(ctx, "quoteExactOutput", reversedPath, amountOut)
}

func (c *Client) quote(ctx context.Context, method string, path []byte, amount *big.Int) (providers.AMMQuote, error) {
	callData, err := quoterABI.Pack(method, path, amount)
	if err != nil {
		return providers.AMMQuote{}, clierr.Wrap(clierr.CodeInternal, "pack quoter calldata", err)
	}
	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.quoter, Data: callData}, nil)
	if err != nil {
		return providers.AMMQuote{}, clierr.Wrap(clierr.CodeProvider, "amm quote rejected", err)
	}
	decoded, err := quoterABI.Unpack(method, out)
	if err != nil || len(decoded) < 4 {
		return providers.AMMQuote{}, clierr.Wrap(clierr.CodeUnavailable, "decode quoter response", err)
	}

	quoted, ok := decoded[0].(*big.Int)
	if !ok || quoted == nil {
		return providers.AMMQuote{}, clierr.New(clierr.CodeUnavailable, "invalid quoted amount in quoter response")
	}
	prices, ok := decoded[1].([]*big.Int)
	if !ok {
		return providers.AMMQuote{}, clierr.New(clierr.CodeUnavailable, "invalid price list in quoter response")
	}
	ticks, ok := decoded[2].([]uint32)
	if !ok {
		return providers.AMMQuote{}, clierr.New(clierr.CodeUnavailable, "invalid tick counts in quoter response")
	}
	gasEstimate, ok := decoded[3].(*big.Int)
	if !ok || gasEstimate == nil {
		gasEstimate = big.NewInt(0)
	}

	return providers.AMMQuote{
		Amount:                  quoted,
		SqrtPriceX96After:       prices,
		InitializedTicksCrossed: ticks,
		GasEstimate:             gasEstimate,
	}, nil
}

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
