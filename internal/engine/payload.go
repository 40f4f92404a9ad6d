package engine

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/providers"
)

// Payload fields sit at fixed 32-byte-aligned offsets, mirroring the wire
// encoding existing callers depend on. Every read is bounds-checked up front;
// a short payload is a decode failure, never a silent zero-fill.

const wordSize = 32

func word(payload []byte, index int) ([]byte, error) {
	end := (index + 1) * wordSize
	if len(payload) < end {
		return nil, clierr.New(clierr.CodePayloadTooShort, fmt.Sprintf("payload too short: need %d bytes, have %d", end, len(payload)))
	}
	return payload[index*wordSize : end], nil
}

func wordUint(payload []byte, index int) (*big.Int, error) {
	w, err := word(payload, index)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(w), nil
}

func wordAddress(payload []byte, index int) (common.Address, error) {
	w, err := word(payload, index)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(w), nil
}

func wordBytes32(payload []byte, index int) ([32]byte, error) {
	var out [32]byte
	w, err := word(payload, index)
	if err != nil {
		return out, err
	}
	copy(out[:], w)
	return out, nil
}

// declaredTail reads a variable-length field that follows the fixed header:
// the word at lengthIndex declares its byte length and the bytes start at
// start. Everything is validated against the payload length first.
func declaredTail(payload []byte, lengthIndex, start int) ([]byte, error) {
	length, err := wordUint(payload, lengthIndex)
	if err != nil {
		return nil, err
	}
	if !length.IsInt64() || length.Int64() > int64(len(payload)) {
		return nil, clierr.New(clierr.CodePayloadTooShort, fmt.Sprintf("payload too short: declared tail of %s bytes exceeds payload size %d", length, len(payload)))
	}
	end := start + int(length.Int64())
	if len(payload) < end {
		return nil, clierr.New(clierr.CodePayloadTooShort, fmt.Sprintf("payload too short: need %d bytes, have %d", end, len(payload)))
	}
	return payload[start:end], nil
}

// Amount models the wildcard chaining convention explicitly: a raw zero in an
// amount field means "use the previous step's result", anything else is the
// literal amount. The distinction is made at decode time so both branches are
// visible, even though the wire value zero remains the only wildcard marker.
type Amount struct {
	value *big.Int
}

func amountFrom(value *big.Int) Amount {
	return Amount{value: value}
}

func amountAt(payload []byte, index int) (Amount, error) {
	value, err := wordUint(payload, index)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: value}, nil
}

// Wildcard reports whether this field inherits the chained amount.
func (a Amount) Wildcard() bool {
	return a.value == nil || a.value.Sign() == 0
}

// Resolve applies the chaining convention against the prior step's result.
func (a Amount) Resolve(chained *big.Int) *big.Int {
	if a.Wildcard() {
		return new(big.Int).Set(chained)
	}
	return new(big.Int).Set(a.value)
}

// v3SwapInput: word 0 holds the amount, the pool path is the raw tail after
// the fixed header. Path well-formedness is left to the quoting provider.
type v3SwapInput struct {
	Amount Amount
	Path   []byte
}

func decodeV3SwapInput(payload []byte) (v3SwapInput, error) {
	amount, err := amountAt(payload, 0)
	if err != nil {
		return v3SwapInput{}, err
	}
	return v3SwapInput{Amount: amount, Path: payload[wordSize:]}, nil
}

// vaultPreviewInput: word 0 is the vault address, word 1 the amount.
type vaultPreviewInput struct {
	Vault  common.Address
	Amount Amount
}

func decodeVaultPreviewInput(payload []byte) (vaultPreviewInput, error) {
	vault, err := wordAddress(payload, 0)
	if err != nil {
		return vaultPreviewInput{}, err
	}
	amount, err := amountAt(payload, 1)
	if err != nil {
		return vaultPreviewInput{}, err
	}
	return vaultPreviewInput{Vault: vault, Amount: amount}, nil
}

// singleSwapInput: pool id, asset in, asset out, amount, then user data as a
// declared-length tail after the five-word header.
type singleSwapInput struct {
	PoolID   [32]byte
	AssetIn  common.Address
	AssetOut common.Address
	Amount   Amount
	UserData []byte
}

func decodeSingleSwapInput(payload []byte) (singleSwapInput, error) {
	poolID, err := wordBytes32(payload, 0)
	if err != nil {
		return singleSwapInput{}, err
	}
	assetIn, err := wordAddress(payload, 1)
	if err != nil {
		return singleSwapInput{}, err
	}
	assetOut, err := wordAddress(payload, 2)
	if err != nil {
		return singleSwapInput{}, err
	}
	amount, err := amountAt(payload, 3)
	if err != nil {
		return singleSwapInput{}, err
	}
	userData, err := declaredTail(payload, 4, 5*wordSize)
	if err != nil {
		return singleSwapInput{}, err
	}
	return singleSwapInput{PoolID: poolID, AssetIn: assetIn, AssetOut: assetOut, Amount: amount, UserData: userData}, nil
}

// batchSwapInput: word 0 step count, word 1 asset count, then four words per
// step (pool id, asset-in index, asset-out index, amount) and one address
// word per asset. Step user data is not carried on the wire.
type batchSwapInput struct {
	Steps  []providers.BatchSwapStep
	Assets []common.Address
}

const batchStepWords = 4

func decodeBatchSwapInput(payload []byte) (batchSwapInput, error) {
	stepCount, err := payloadCount(payload, 0, "step")
	if err != nil {
		return batchSwapInput{}, err
	}
	assetCount, err := payloadCount(payload, 1, "asset")
	if err != nil {
		return batchSwapInput{}, err
	}

	steps := make([]providers.BatchSwapStep, 0, stepCount)
	cursor := 2
	for i := 0; i < stepCount; i++ {
		poolID, err := wordBytes32(payload, cursor)
		if err != nil {
			return batchSwapInput{}, err
		}
		assetInIndex, err := wordUint(payload, cursor+1)
		if err != nil {
			return batchSwapInput{}, err
		}
		assetOutIndex, err := wordUint(payload, cursor+2)
		if err != nil {
			return batchSwapInput{}, err
		}
		amount, err := wordUint(payload, cursor+3)
		if err != nil {
			return batchSwapInput{}, err
		}
		steps = append(steps, providers.BatchSwapStep{
			PoolID:        poolID,
			AssetInIndex:  assetInIndex,
			AssetOutIndex: assetOutIndex,
			Amount:        amount,
			UserData:      []byte{},
		})
		cursor += batchStepWords
	}

	assets := make([]common.Address, 0, assetCount)
	for i := 0; i < assetCount; i++ {
		asset, err := wordAddress(payload, cursor)
		if err != nil {
			return batchSwapInput{}, err
		}
		assets = append(assets, asset)
		cursor++
	}

	return batchSwapInput{Steps: steps, Assets: assets}, nil
}

// payloadCount reads a length word and rejects any count the payload cannot
// physically contain, so later word reads cannot be tricked into huge loops.
func payloadCount(payload []byte, index int, kind string) (int, error) {
	value, err := wordUint(payload, index)
	if err != nil {
		return 0, err
	}
	if !value.IsInt64() || value.Int64() > int64(len(payload)/wordSize) {
		return 0, clierr.New(clierr.CodePayloadTooShort, fmt.Sprintf("payload too short: declared %s count %s exceeds payload capacity", kind, value))
	}
	return int(value.Int64()), nil
}
