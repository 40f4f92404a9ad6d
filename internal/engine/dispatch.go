package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/providers"
)

// Output blobs preserve the provider's full result tuple so downstream
// consumers can inspect auxiliary fields beyond the chained scalar.
var (
	ammOutputArgs    = outputArgs("uint256", "uint160[]", "uint32[]", "uint256")
	vaultOutputArgs  = outputArgs("uint256")
	batchOutputArgs  = outputArgs("int256[]")
	singleOutputArgs = outputArgs("int256")
)

func outputArgs(types ...string) abi.Arguments {
	args := make(abi.Arguments, 0, len(types))
	for _, t := range types {
		parsed, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		args = append(args, abi.Argument{Type: parsed})
	}
	return args
}

// maxInt256 bounds the signed range used when a chained amount crosses into
// the signed batch accounting.
var maxInt256 = new(big.Int).Lsh(big.NewInt(1), 255)

// dispatch decodes one command's payload, applies the chaining convention,
// invokes the matching provider adapter and returns the amount to chain
// forward plus the step's opaque output.
func (e *Engine) dispatch(ctx context.Context, cmd Command, payload []byte, chained *big.Int) (*big.Int, []byte, error) {
	switch cmd.Opcode() {
	case CommandV3SwapExactIn:
		in, err := decodeV3SwapInput(payload)
		if err != nil {
			return nil, nil, err
		}
		quote, err := e.amm.QuoteExactInput(ctx, in.Path, in.Amount.Resolve(chained))
		if err != nil {
			return nil, nil, err
		}
		blob, err := packAMMQuote(quote)
		return quote.Amount, blob, err

	case CommandV3SwapExactOut:
		in, err := decodeV3SwapInput(payload)
		if err != nil {
			return nil, nil, err
		}
		quote, err := e.amm.QuoteExactOutput(ctx, in.Path, in.Amount.Resolve(chained))
		if err != nil {
			return nil, nil, err
		}
		blob, err := packAMMQuote(quote)
		return quote.Amount, blob, err

	case CommandVaultDeposit:
		return e.vaultPreview(ctx, payload, chained, e.vault.PreviewDeposit)
	case CommandVaultRedeem:
		return e.vaultPreview(ctx, payload, chained, e.vault.PreviewRedeem)
	case CommandVaultMint:
		return e.vaultPreview(ctx, payload, chained, e.vault.PreviewMint)
	case CommandVaultWithdraw:
		return e.vaultPreview(ctx, payload, chained, e.vault.PreviewWithdraw)

	case CommandBatchSwapExactIn:
		in, err := decodeBatchSwapInput(payload)
		if err != nil {
			return nil, nil, err
		}
		if len(in.Steps) == 0 {
			return nil, nil, clierr.New(clierr.CodeUsage, "batch swap payload declares no steps")
		}
		// Only the first step inherits the chained amount; inner wildcards
		// belong to the venue's own within-batch chaining.
		in.Steps[0].Amount = amountFrom(in.Steps[0].Amount).Resolve(chained)
		deltas, err := e.pool.QueryBatchSwapExactIn(ctx, in.Steps, in.Assets)
		if err != nil {
			return nil, nil, err
		}
		received, err := deltaAt(deltas, in.Steps[len(in.Steps)-1].AssetOutIndex)
		if err != nil {
			return nil, nil, err
		}
		out, err := negateReceivedDelta(received)
		if err != nil {
			return nil, nil, err
		}
		blob, err := packDeltas(deltas)
		return out, blob, err

	case CommandBatchSwapExactOut:
		in, err := decodeBatchSwapInput(payload)
		if err != nil {
			return nil, nil, err
		}
		if len(in.Steps) == 0 {
			return nil, nil, clierr.New(clierr.CodeUsage, "batch swap payload declares no steps")
		}
		// Exact-output accounting represents outgoing amounts as negative, so
		// the last step inherits the negated chained amount.
		last := len(in.Steps) - 1
		if amountFrom(in.Steps[last].Amount).Wildcard() {
			negated, err := negateChained(chained)
			if err != nil {
				return nil, nil, err
			}
			in.Steps[last].Amount = negated
		}
		deltas, err := e.pool.QueryBatchSwapExactOut(ctx, in.Steps, in.Assets)
		if err != nil {
			return nil, nil, err
		}
		paid, err := deltaAt(deltas, in.Steps[0].AssetInIndex)
		if err != nil {
			return nil, nil, err
		}
		if paid.Sign() < 0 {
			return nil, nil, clierr.New(clierr.CodeOverflow, fmt.Sprintf("unexpected negative input delta %s in exact-output batch", paid))
		}
		blob, err := packDeltas(deltas)
		return paid, blob, err

	case CommandSwapExactIn:
		in, err := decodeSingleSwapInput(payload)
		if err != nil {
			return nil, nil, err
		}
		delta, err := e.pool.QuerySwapExactIn(ctx, providers.SingleSwap{
			PoolID:   in.PoolID,
			AssetIn:  in.AssetIn,
			AssetOut: in.AssetOut,
			Amount:   in.Amount.Resolve(chained),
			UserData: in.UserData,
		})
		if err != nil {
			return nil, nil, err
		}
		out, err := negateReceivedDelta(delta)
		if err != nil {
			return nil, nil, err
		}
		blob, err := packDelta(delta)
		return out, blob, err

	case CommandSwapExactOut:
		in, err := decodeSingleSwapInput(payload)
		if err != nil {
			return nil, nil, err
		}
		delta, err := e.pool.QuerySwapExactOut(ctx, providers.SingleSwap{
			PoolID:   in.PoolID,
			AssetIn:  in.AssetIn,
			AssetOut: in.AssetOut,
			Amount:   in.Amount.Resolve(chained),
			UserData: in.UserData,
		})
		if err != nil {
			return nil, nil, err
		}
		if delta.Sign() < 0 {
			return nil, nil, clierr.New(clierr.CodeOverflow, fmt.Sprintf("unexpected negative input delta %s in exact-output swap", delta))
		}
		blob, err := packDelta(delta)
		return delta, blob, err

	default:
		return nil, nil, clierr.New(clierr.CodeInvalidCommand, fmt.Sprintf("invalid command 0x%02x", byte(cmd)))
	}
}

type vaultPreviewFn func(ctx context.Context, vault common.Address, amount *big.Int) (*big.Int, error)

func (e *Engine) vaultPreview(ctx context.Context, payload []byte, chained *big.Int, preview vaultPreviewFn) (*big.Int, []byte, error) {
	in, err := decodeVaultPreviewInput(payload)
	if err != nil {
		return nil, nil, err
	}
	amount, err := preview(ctx, in.Vault, in.Amount.Resolve(chained))
	if err != nil {
		return nil, nil, err
	}
	blob, err := vaultOutputArgs.Pack(amount)
	if err != nil {
		return nil, nil, clierr.Wrap(clierr.CodeInternal, "encode vault preview output", err)
	}
	return amount, blob, nil
}

func packAMMQuote(quote providers.AMMQuote) ([]byte, error) {
	blob, err := ammOutputArgs.Pack(quote.Amount, quote.SqrtPriceX96After, quote.InitializedTicksCrossed, quote.GasEstimate)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeInternal, "encode amm quote output", err)
	}
	return blob, nil
}

func packDeltas(deltas []*big.Int) ([]byte, error) {
	blob, err := batchOutputArgs.Pack(deltas)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeInternal, "encode batch swap output", err)
	}
	return blob, nil
}

func packDelta(delta *big.Int) ([]byte, error) {
	blob, err := singleOutputArgs.Pack(delta)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeInternal, "encode swap output", err)
	}
	return blob, nil
}

func deltaAt(deltas []*big.Int, index *big.Int) (*big.Int, error) {
	if !index.IsInt64() || index.Int64() >= int64(len(deltas)) {
		return nil, clierr.New(clierr.CodeProvider, fmt.Sprintf("asset index %s out of range for %d returned deltas", index, len(deltas)))
	}
	return deltas[index.Int64()], nil
}

// negateReceivedDelta converts a venue delta for tokens the caller would
// receive (zero or negative) into the unsigned chained amount.
func negateReceivedDelta(delta *big.Int) (*big.Int, error) {
	if delta.Sign() > 0 {
		return nil, clierr.New(clierr.CodeOverflow, fmt.Sprintf("cannot chain positive delta %s as received amount", delta))
	}
	return new(big.Int).Neg(delta), nil
}

// negateChained converts the unsigned chained amount into the negative signed
// representation used by exact-output batch accounting.
func negateChained(chained *big.Int) (*big.Int, error) {
	if chained.Cmp(maxInt256) > 0 {
		return nil, clierr.New(clierr.CodeOverflow, fmt.Sprintf("chained amount %s exceeds signed batch range", chained))
	}
	return new(big.Int).Neg(chained), nil
}
