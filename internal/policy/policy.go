// Package policy gates which engine opcodes a run may dispatch. An empty
// allowlist permits everything; otherwise every decoded step must match an
// entry by command name or hex opcode before any provider is called.
package policy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ggonzalez94/quoter-cli/internal/engine"
	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
)

func CheckCommandsAllowed(allowlist []string, commands []byte) error {
	if len(allowlist) == 0 {
		return nil
	}
	allowed := make(map[engine.Command]bool, len(allowlist))
	for _, entry := range allowlist {
		cmd, err := parseEntry(entry)
		if err != nil {
			return err
		}
		allowed[cmd.Opcode()] = true
	}
	for i, raw := range commands {
		cmd := engine.Command(raw).Opcode()
		if !allowed[cmd] {
			return clierr.New(clierr.CodeBlocked, fmt.Sprintf("step %d (%s) blocked by --enable-commands policy", i, cmd.Name()))
		}
	}
	return nil
}

// parseEntry accepts command names (V3_SWAP_EXACT_IN) or hex opcodes (0x10).
func parseEntry(entry string) (engine.Command, error) {
	norm := strings.TrimSpace(entry)
	if raw, ok := strings.CutPrefix(strings.ToLower(norm), "0x"); ok {
		value, err := strconv.ParseUint(raw, 16, 8)
		if err != nil {
			return 0, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid opcode %q in --enable-commands", entry))
		}
		return engine.Command(value), nil
	}
	name := strings.ToUpper(norm)
	for _, cmd := range engine.Commands() {
		if cmd.Name() == name {
			return cmd, nil
		}
	}
	return 0, clierr.New(clierr.CodeUsage, fmt.Sprintf("unknown command %q in --enable-commands", entry))
}
