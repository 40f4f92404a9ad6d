// Package plan assembles command/payload sequences for the quote engine. It
// is the write-side counterpart of the engine's decoders: every builder emits
// exactly the fixed-offset layout the matching opcode expects.
package plan

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ggonzalez94/quoter-cli/internal/engine"
	"github.com/ggonzalez94/quoter-cli/internal/providers"
)

// UseChained is the wire wildcard: an amount of literal zero makes the engine
// substitute the previous step's result.
func UseChained() *big.Int {
	return new(big.Int)
}

// Plan accumulates steps in execution order.
type Plan struct {
	commands []byte
	inputs   [][]byte
}

func New() *Plan {
	return &Plan{}
}

func (p *Plan) Commands() []byte {
	return append([]byte(nil), p.commands...)
}

func (p *Plan) Inputs() [][]byte {
	out := make([][]byte, len(p.inputs))
	for i, input := range p.inputs {
		out[i] = append([]byte(nil), input...)
	}
	return out
}

func (p *Plan) Len() int {
	return len(p.commands)
}

func (p *Plan) add(cmd engine.Command, payload []byte) *Plan {
	p.commands = append(p.commands, byte(cmd))
	p.inputs = append(p.inputs, payload)
	return p
}

// V3ExactIn quotes a multi-hop exact-input swap along an encoded pool path.
func (p *Plan) V3ExactIn(path []byte, amountIn *big.Int) *Plan {
	return p.add(engine.CommandV3SwapExactIn, v3Payload(path, amountIn))
}

// V3ExactOut quotes a multi-hop exact-output swap; path must already be in
// reverse hop order (see ReversePath).
func (p *Plan) V3ExactOut(reversedPath []byte, amountOut *big.Int) *Plan {
	return p.add(engine.CommandV3SwapExactOut, v3Payload(reversedPath, amountOut))
}

func (p *Plan) VaultDeposit(vault common.Address, assets *big.Int) *Plan {
	return p.add(engine.CommandVaultDeposit, vaultPayload(vault, assets))
}

func (p *Plan) VaultRedeem(vault common.Address, shares *big.Int) *Plan {
	return p.add(engine.CommandVaultRedeem, vaultPayload(vault, shares))
}

func (p *Plan) VaultMint(vault common.Address, shares *big.Int) *Plan {
	return p.add(engine.CommandVaultMint, vaultPayload(vault, shares))
}

func (p *Plan) VaultWithdraw(vault common.Address, assets *big.Int) *Plan {
	return p.add(engine.CommandVaultWithdraw, vaultPayload(vault, assets))
}

func (p *Plan) BatchSwapExactIn(steps []providers.BatchSwapStep, assets []common.Address) *Plan {
	return p.add(engine.CommandBatchSwapExactIn, batchPayload(steps, assets))
}

func (p *Plan) BatchSwapExactOut(steps []providers.BatchSwapStep, assets []common.Address) *Plan {
	return p.add(engine.CommandBatchSwapExactOut, batchPayload(steps, assets))
}

func (p *Plan) SwapExactIn(poolID [32]byte, assetIn, assetOut common.Address, amount *big.Int, userData []byte) *Plan {
	return p.add(engine.CommandSwapExactIn, singlePayload(poolID, assetIn, assetOut, amount, userData))
}

func (p *Plan) SwapExactOut(poolID [32]byte, assetIn, assetOut common.Address, amount *big.Int, userData []byte) *Plan {
	return p.add(engine.CommandSwapExactOut, singlePayload(poolID, assetIn, assetOut, amount, userData))
}

func v3Payload(path []byte, amount *big.Int) []byte {
	payload := make([]byte, 0, 32+len(path))
	payload = append(payload, amountWord(amount)...)
	return append(payload, path...)
}

func vaultPayload(vault common.Address, amount *big.Int) []byte {
	payload := make([]byte, 0, 64)
	payload = append(payload, addressWord(vault)...)
	return append(payload, amountWord(amount)...)
}

func singlePayload(poolID [32]byte, assetIn, assetOut common.Address, amount *big.Int, userData []byte) []byte {
	payload := make([]byte, 0, 5*32+len(userData))
	payload = append(payload, poolID[:]...)
	payload = append(payload, addressWord(assetIn)...)
	payload = append(payload, addressWord(assetOut)...)
	payload = append(payload, amountWord(amount)...)
	payload = append(payload, uintWord(int64(len(userData)))...)
	return append(payload, userData...)
}

func batchPayload(steps []providers.BatchSwapStep, assets []common.Address) []byte {
	payload := make([]byte, 0, (2+4*len(steps)+len(assets))*32)
	payload = append(payload, uintWord(int64(len(steps)))...)
	payload = append(payload, uintWord(int64(len(assets)))...)
	for _, step := range steps {
		payload = append(payload, step.PoolID[:]...)
		payload = append(payload, amountWord(step.AssetInIndex)...)
		payload = append(payload, amountWord(step.AssetOutIndex)...)
		payload = append(payload, amountWord(step.Amount)...)
	}
	for _, asset := range assets {
		payload = append(payload, addressWord(asset)...)
	}
	return payload
}

func amountWord(amount *big.Int) []byte {
	if amount == nil {
		return make([]byte, 32)
	}
	return common.LeftPadBytes(amount.Bytes(), 32)
}

func uintWord(value int64) []byte {
	return common.LeftPadBytes(big.NewInt(value).Bytes(), 32)
}

func addressWord(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}
