// Package vault4626 adapts ERC-4626 preview calls to the engine's vault
// contract. All four operations share one shape: one amount in, the
// counter-amount at the current exchange rate out. Vault addresses arrive per
// call from the command payload.
package vault4626

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
	"github.com/ggonzalez94/quoter-cli/internal/registry"
)

var previewABI = mustABI(registry.ERC4626PreviewABI)

type Client struct {
	caller ethereum.ContractCaller
}

func New(caller ethereum.ContractCaller) *Client {
	return &Client{caller: caller}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name: "erc4626-vault",
		Type: "vault",
		Capabilities: []string{
			"preview.deposit",
			"preview.redeem",
			"preview.mint",
			"preview.withdraw",
		},
	}
}

func (c *Client) PreviewDeposit(ctx context.Context, vault common.Address, assets *big.Int) (*big.Int, error) {
	return c.preview(ctx, vault, "previewDeposit", assets)
}

func (c *Client) PreviewMint(ctx context.Context, vault common.Address, shares *big.Int) (*big.Int, error) {
	return c.preview(ctx, vault, "previewMint", shares)
}

func (c *Client) PreviewWithdraw(ctx context.Context, vault common.Address, assets *big.Int) (*big.Int, error) {
	return c.preview(ctx, vault, "previewWithdraw", assets)
}

func (c *Client) PreviewRedeem(ctx context.Context, vault common.Address, shares *big.Int) (*big.Int, error) {
	return c.preview(ctx, vault, "previewRedeem", shares)
}

func (c *Client) preview(ctx context.Context, vault common.Address, method string, amount *big.Int) (*big.Int, error) {
	callData, err := previewABI.Pack(method, amount)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeInternal, fmt.Sprintf("pack %s calldata", method), err)
	}
	out, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &vault, Data: callData}, nil)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeProvider, fmt.Sprintf("vault %s rejected", method), err)
	}
	decoded, err := previewABI.Unpack(method, out)
	if err != nil || len(decoded) == 0 {
		return nil, clierr.Wrap(clierr.CodeUnavailable, fmt.Sprintf("decode %s response", method), err)
	}
	value, ok := decoded[0].(*big.Int)
	if !ok || value == nil {
		return nil, clierr.New(clierr.CodeUnavailable, fmt.Sprintf("invalid %s response", method))
	}
	return value, nil
}

func mustABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
