package plan

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/id"
)

// Step specs use colon-separated fields:
//
//	v3-exact-in:USDC/WETH@3000:2500000000
//	v3-exact-out:USDC/WETH@3000/DAI@500:1000000000000000000
//	vault-deposit:0x<vault>:prev
//	vault-redeem:0x<vault>:prev
//	vault-mint:0x<vault>:prev
//	vault-withdraw:0x<vault>:prev
//	swap-exact-in:0x<poolId>:USDC/WETH:prev
//	swap-exact-out:0x<poolId>:USDC/WETH:prev
//
// Amounts are base units, or decimal form (2.5) when the step's token is in
// the registry; "prev" chains the previous step's result. Token fields accept
// registry symbols or 0x addresses, resolved on the given chain. Batch swaps
// have no step syntax; encode those with the builder or submit raw calldata
// through exec.

const amountChained = "prev"

// ParseSteps builds a plan from step specs, resolving symbols on chain.
func ParseSteps(specs []string, chain id.Chain) (*Plan, error) {
	if len(specs) == 0 {
		return nil, clierr.New(clierr.CodeUsage, "at least one --step is required")
	}
	p := New()
	for i, spec := range specs {
		if err := parseStep(p, spec, chain); err != nil {
			return nil, clierr.Rewrap(fmt.Sprintf("step %d (%q)", i, spec), err)
		}
	}
	return p, nil
}

func parseStep(p *Plan, spec string, chain id.Chain) error {
	kind, rest, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok {
		return clierr.New(clierr.CodeUsage, "expected <kind>:<args>")
	}
	kind = strings.ToLower(kind)
	switch kind {
	case "v3-exact-in", "v3-exact-out":
		routeSpec, amountSpec, ok := strings.Cut(rest, ":")
		if !ok {
			return clierr.New(clierr.CodeUsage, "expected <route>:<amount>")
		}
		path, tokens, err := parseRoute(routeSpec, chain)
		if err != nil {
			return err
		}
		// Exact-input amounts are denominated in the route's first token,
		// exact-output amounts in its last.
		amountToken := tokens[0]
		if kind == "v3-exact-out" {
			amountToken = tokens[len(tokens)-1]
		}
		amount, err := parseAmount(amountSpec, amountToken.Decimals)
		if err != nil {
			return err
		}
		if kind == "v3-exact-out" {
			if path, err = ReversePath(path); err != nil {
				return err
			}
			p.V3ExactOut(path, amount)
			return nil
		}
		p.V3ExactIn(path, amount)
		return nil

	case "vault-deposit", "vault-redeem", "vault-mint", "vault-withdraw":
		vaultSpec, amountSpec, ok := strings.Cut(rest, ":")
		if !ok {
			return clierr.New(clierr.CodeUsage, "expected <vault>:<amount>")
		}
		if !common.IsHexAddress(vaultSpec) {
			return clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid vault address %q", vaultSpec))
		}
		vault := common.HexToAddress(vaultSpec)
		amount, err := parseAmount(amountSpec, 0)
		if err != nil {
			return err
		}
		switch kind {
		case "vault-deposit":
			p.VaultDeposit(vault, amount)
		case "vault-redeem":
			p.VaultRedeem(vault, amount)
		case "vault-mint":
			p.VaultMint(vault, amount)
		default:
			p.VaultWithdraw(vault, amount)
		}
		return nil

	case "swap-exact-in", "swap-exact-out":
		fields := strings.SplitN(rest, ":", 3)
		if len(fields) != 3 {
			return clierr.New(clierr.CodeUsage, "expected <poolId>:<tokenIn>/<tokenOut>:<amount>")
		}
		poolID, err := parsePoolID(fields[0])
		if err != nil {
			return err
		}
		inSpec, outSpec, ok := strings.Cut(fields[1], "/")
		if !ok {
			return clierr.New(clierr.CodeUsage, "expected <tokenIn>/<tokenOut>")
		}
		tokenIn, err := id.ParseToken(inSpec, chain)
		if err != nil {
			return err
		}
		tokenOut, err := id.ParseToken(outSpec, chain)
		if err != nil {
			return err
		}
		assetIn := common.HexToAddress(tokenIn.Address)
		assetOut := common.HexToAddress(tokenOut.Address)
		if kind == "swap-exact-out" {
			amount, err := parseAmount(fields[2], tokenOut.Decimals)
			if err != nil {
				return err
			}
			p.SwapExactOut(poolID, assetIn, assetOut, amount, nil)
			return nil
		}
		amount, err := parseAmount(fields[2], tokenIn.Decimals)
		if err != nil {
			return err
		}
		p.SwapExactIn(poolID, assetIn, assetOut, amount, nil)
		return nil
	}
	return clierr.New(clierr.CodeUsage, fmt.Sprintf("unknown step kind %q", kind))
}

// parseRoute turns "USDC/WETH@3000/DAI@500" into a packed path. The first
// segment has no fee; every later segment names the pool fee joining it to
// the previous token. The resolved token list is returned alongside the path
// so callers can pick the right decimals for amount parsing.
func parseRoute(spec string, chain id.Chain) ([]byte, []id.Token, error) {
	segments := strings.Split(spec, "/")
	if len(segments) < 2 {
		return nil, nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("route %q needs at least two tokens", spec))
	}
	tokens := make([]id.Token, 0, len(segments))
	addresses := make([]common.Address, 0, len(segments))
	fees := make([]uint32, 0, len(segments)-1)
	for i, segment := range segments {
		tokenSpec := segment
		if i > 0 {
			var feeSpec string
			var ok bool
			tokenSpec, feeSpec, ok = strings.Cut(segment, "@")
			if !ok {
				return nil, nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("hop %q is missing a pool fee (token@fee)", segment))
			}
			fee, err := strconv.ParseUint(feeSpec, 10, 32)
			if err != nil {
				return nil, nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid pool fee %q", feeSpec))
			}
			fees = append(fees, uint32(fee))
		}
		token, err := id.ParseToken(tokenSpec, chain)
		if err != nil {
			return nil, nil, err
		}
		tokens = append(tokens, token)
		addresses = append(addresses, common.HexToAddress(token.Address))
	}
	path, err := EncodePath(addresses, fees)
	if err != nil {
		return nil, nil, err
	}
	return path, tokens, nil
}

func parseAmount(spec string, decimals int) (*big.Int, error) {
	trimmed := strings.TrimSpace(spec)
	if strings.EqualFold(trimmed, amountChained) {
		return UseChained(), nil
	}
	if strings.Contains(trimmed, ".") {
		base, _, err := id.NormalizeAmount("", trimmed, decimals)
		if err != nil {
			return nil, err
		}
		amount, _ := new(big.Int).SetString(base, 10)
		return amount, nil
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok || amount.Sign() < 0 {
		return nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid amount %q, expected base units, decimal form or %q", spec, amountChained))
	}
	return amount, nil
}

func parsePoolID(spec string) ([32]byte, error) {
	var poolID [32]byte
	raw := strings.TrimPrefix(strings.TrimSpace(spec), "0x")
	if len(raw) != 64 {
		return poolID, clierr.New(clierr.CodeUsage, fmt.Sprintf("pool id %q must be 32 hex bytes", spec))
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return poolID, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid pool id %q", spec))
	}
	copy(poolID[:], decoded)
	return poolID, nil
}
