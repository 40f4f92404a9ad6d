package engine

import "fmt"

// Command is a single opcode byte selecting which quoting operation a step
// performs. The low six bits carry the opcode; the top two bits are reserved
// flag space in the historical encoding and are masked off before dispatch.
type Command byte

const commandTypeMask = 0x3f

// Opcodes are grouped into contiguous ranges per handler family. Gaps inside
// a range and the ranges marked reserved are unassigned: executing them fails
// identically to any unknown opcode.
const (
	CommandV3SwapExactIn  Command = 0x00
	CommandV3SwapExactOut Command = 0x01
	// 0x02-0x0f reserved for future swap protocol families.

	CommandVaultDeposit  Command = 0x10
	CommandVaultRedeem   Command = 0x11
	CommandVaultMint     Command = 0x12
	CommandVaultWithdraw Command = 0x13
	// 0x14-0x17 reserved.

	CommandBatchSwapExactIn  Command = 0x18
	CommandBatchSwapExactOut Command = 0x19
	CommandSwapExactIn       Command = 0x1a
	CommandSwapExactOut      Command = 0x1b
	// 0x1c and above unassigned.
)

var commandNames = map[Command]string{
	CommandV3SwapExactIn:     "V3_SWAP_EXACT_IN",
	CommandV3SwapExactOut:    "V3_SWAP_EXACT_OUT",
	CommandVaultDeposit:      "VAULT_DEPOSIT",
	CommandVaultRedeem:       "VAULT_REDEEM",
	CommandVaultMint:         "VAULT_MINT",
	CommandVaultWithdraw:     "VAULT_WITHDRAW",
	CommandBatchSwapExactIn:  "BATCH_SWAP_EXACT_IN",
	CommandBatchSwapExactOut: "BATCH_SWAP_EXACT_OUT",
	CommandSwapExactIn:       "SWAP_EXACT_IN",
	CommandSwapExactOut:      "SWAP_EXACT_OUT",
}

var commandFamilies = map[Command]string{
	CommandV3SwapExactIn:     "amm",
	CommandV3SwapExactOut:    "amm",
	CommandVaultDeposit:      "vault",
	CommandVaultRedeem:       "vault",
	CommandVaultMint:         "vault",
	CommandVaultWithdraw:     "vault",
	CommandBatchSwapExactIn:  "weighted-pool",
	CommandBatchSwapExactOut: "weighted-pool",
	CommandSwapExactIn:       "weighted-pool",
	CommandSwapExactOut:      "weighted-pool",
}

// Opcode strips the reserved flag bits.
func (c Command) Opcode() Command {
	return c & commandTypeMask
}

func (c Command) Name() string {
	if name, ok := commandNames[c.Opcode()]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_0x%02x", byte(c))
}

func (c Command) Family() string {
	return commandFamilies[c.Opcode()]
}

// Known reports whether the opcode maps to an implemented handler.
func (c Command) Known() bool {
	_, ok := commandNames[c.Opcode()]
	return ok
}

// Commands lists the implemented instruction set in opcode order.
func Commands() []Command {
	out := make([]Command, 0, len(commandNames))
	for c := Command(0); c <= commandTypeMask; c++ {
		if c.Known() {
			out = append(out, c)
		}
	}
	return out
}
