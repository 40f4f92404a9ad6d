// Package engine implements the quote-chaining interpreter: it decodes a
// caller-supplied command/payload sequence, routes each command to a pricing
// provider and threads every step's quoted amount into the next step's
// wildcarded amount field.
package engine

import (
	"context"
	"fmt"
	"math/big"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/providers"
)

// Engine holds the three provider adapters fixed at construction. It keeps no
// state across calls; every Execute is a pure function of its inputs and the
// providers' current view of the market.
type Engine struct {
	amm   providers.AMMQuoter
	vault providers.VaultPreviewer
	pool  providers.PoolQuerier
}

func New(amm providers.AMMQuoter, vault providers.VaultPreviewer, pool providers.PoolQuerier) *Engine {
	return &Engine{amm: amm, vault: vault, pool: pool}
}

// StepTrace records one executed step: the opcode that ran, the chained
// amount after the step, and the provider's full result tuple ABI-encoded.
type StepTrace struct {
	Command Command
	Amount  *big.Int
	Output  []byte
}

// Execute runs the command sequence strictly in order. commands[i] is one
// opcode byte and inputs[i] its payload. It returns the final chained amount
// and one opaque output blob per step. The first step chains from literal
// zero; callers wanting an explicit first-hop amount encode it in the
// payload. Any step failure aborts the whole request.
func (e *Engine) Execute(ctx context.Context, commands []byte, inputs [][]byte) (*big.Int, [][]byte, error) {
	trace, err := e.Trace(ctx, commands, inputs)
	if err != nil {
		return nil, nil, err
	}
	chained := new(big.Int)
	outputs := make([][]byte, 0, len(trace))
	for _, step := range trace {
		chained = step.Amount
		outputs = append(outputs, step.Output)
	}
	return chained, outputs, nil
}

// Trace is Execute with per-step visibility.
func (e *Engine) Trace(ctx context.Context, commands []byte, inputs [][]byte) ([]StepTrace, error) {
	if len(commands) != len(inputs) {
		return nil, clierr.New(clierr.CodeLengthMismatch, fmt.Sprintf("length mismatch: %d commands, %d inputs", len(commands), len(inputs)))
	}

	chained := new(big.Int)
	trace := make([]StepTrace, 0, len(commands))
	for i := range commands {
		cmd := Command(commands[i])
		next, blob, err := e.dispatch(ctx, cmd, inputs[i], chained)
		if err != nil {
			return nil, clierr.Rewrap(fmt.Sprintf("step %d (%s)", i, cmd.Name()), err)
		}
		chained = next
		trace = append(trace, StepTrace{Command: cmd, Amount: chained, Output: blob})
	}
	return trace, nil
}
