package plan

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ggonzalez94/quoter-cli/internal/engine"
	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/id"
)

func TestBuilderEmitsMatchedCommandAndInputCounts(t *testing.T) {
	vault := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	p := New().
		V3ExactIn([]byte{0x01}, big.NewInt(100)).
		VaultDeposit(vault, UseChained())

	commands := p.Commands()
	inputs := p.Inputs()
	if len(commands) != 2 || len(inputs) != 2 {
		t.Fatalf("unexpected plan shape: %d commands %d inputs", len(commands), len(inputs))
	}
	if commands[0] != byte(engine.CommandV3SwapExactIn) || commands[1] != byte(engine.CommandVaultDeposit) {
		t.Fatalf("unexpected opcodes: %x", commands)
	}

	// Word 0 of the v3 payload carries the literal amount, the path follows.
	if got := new(big.Int).SetBytes(inputs[0][:32]); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("unexpected v3 amount word: %s", got)
	}
	if !bytes.Equal(inputs[0][32:], []byte{0x01}) {
		t.Fatalf("unexpected v3 path tail: %x", inputs[0][32:])
	}

	// The vault payload is vault word then wildcard amount word.
	if got := common.BytesToAddress(inputs[1][:32]); got != vault {
		t.Fatalf("unexpected vault word: %s", got)
	}
	if got := new(big.Int).SetBytes(inputs[1][32:64]); got.Sign() != 0 {
		t.Fatalf("expected wildcard zero amount, got %s", got)
	}
}

func TestEncodePath(t *testing.T) {
	tokens := []common.Address{
		common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		common.HexToAddress("0x00000000000000000000000000000000000000bb"),
	}
	path, err := EncodePath(tokens, []uint32{3000})
	if err != nil {
		t.Fatalf("EncodePath failed: %v", err)
	}
	if len(path) != 43 {
		t.Fatalf("expected 43 byte single-hop path, got %d", len(path))
	}
	if !bytes.Equal(path[:20], tokens[0].Bytes()) || !bytes.Equal(path[23:], tokens[1].Bytes()) {
		t.Fatalf("token placement wrong: %x", path)
	}
	if path[20] != 0x00 || path[21] != 0x0b || path[22] != 0xb8 {
		t.Fatalf("fee 3000 encoded wrong: %x", path[20:23])
	}

	if _, err := EncodePath(tokens[:1], nil); err == nil {
		t.Fatal("expected error for single-token path")
	}
	if _, err := EncodePath(tokens, []uint32{3000, 500}); err == nil {
		t.Fatal("expected error for fee count mismatch")
	}
	if _, err := EncodePath(tokens, []uint32{1_000_000}); err == nil {
		t.Fatal("expected error for out-of-range fee")
	}
}

func TestReversePath(t *testing.T) {
	a := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	b := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	c := common.HexToAddress("0x00000000000000000000000000000000000000cc")
	path, err := EncodePath([]common.Address{a, b, c}, []uint32{3000, 500})
	if err != nil {
		t.Fatalf("EncodePath failed: %v", err)
	}

	reversed, err := ReversePath(path)
	if err != nil {
		t.Fatalf("ReversePath failed: %v", err)
	}
	want, err := EncodePath([]common.Address{c, b, a}, []uint32{500, 3000})
	if err != nil {
		t.Fatalf("EncodePath failed: %v", err)
	}
	if !bytes.Equal(reversed, want) {
		t.Fatalf("reverse mismatch:\n got %x\nwant %x", reversed, want)
	}

	if _, err := ReversePath(path[:30]); err == nil {
		t.Fatal("expected error for malformed path")
	}
}

func TestParseStepsRouteSpec(t *testing.T) {
	chain, err := id.ParseChain("ethereum")
	if err != nil {
		t.Fatalf("ParseChain failed: %v", err)
	}

	p, err := ParseSteps([]string{
		"v3-exact-in:USDC/WETH@3000:2500000000",
		"vault-deposit:0x00000000000000000000000000000000000000cc:prev",
	}, chain)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}
	commands := p.Commands()
	if len(commands) != 2 {
		t.Fatalf("expected two steps, got %d", len(commands))
	}
	if commands[0] != byte(engine.CommandV3SwapExactIn) || commands[1] != byte(engine.CommandVaultDeposit) {
		t.Fatalf("unexpected opcodes: %x", commands)
	}

	inputs := p.Inputs()
	if got := new(big.Int).SetBytes(inputs[0][:32]); got.Cmp(big.NewInt(2_500_000_000)) != 0 {
		t.Fatalf("unexpected amount word: %s", got)
	}
	// One hop: 20 + 3 + 20 path bytes after the amount word.
	if len(inputs[0]) != 32+43 {
		t.Fatalf("unexpected v3 payload length %d", len(inputs[0]))
	}
	if got := new(big.Int).SetBytes(inputs[1][32:64]); got.Sign() != 0 {
		t.Fatalf("expected prev to encode as zero, got %s", got)
	}
}

func TestParseStepsDecimalAmountUsesTokenDecimals(t *testing.T) {
	chain, _ := id.ParseChain("ethereum")
	p, err := ParseSteps([]string{"v3-exact-in:USDC/WETH@3000:2.5"}, chain)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}
	// USDC has 6 decimals, so 2.5 is 2_500_000 base units.
	if got := new(big.Int).SetBytes(p.Inputs()[0][:32]); got.Cmp(big.NewInt(2_500_000)) != 0 {
		t.Fatalf("unexpected amount word: %s", got)
	}

	// Exact-out amounts are denominated in the last route token (WETH, 18).
	p, err = ParseSteps([]string{"v3-exact-out:USDC/WETH@3000:0.5"}, chain)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}
	want, _ := new(big.Int).SetString("500000000000000000", 10)
	if got := new(big.Int).SetBytes(p.Inputs()[0][:32]); got.Cmp(want) != 0 {
		t.Fatalf("unexpected exact-out amount word: %s", got)
	}

	// Too much precision for the token is a usage error.
	_, err = ParseSteps([]string{"v3-exact-in:USDC/WETH@3000:1.0000001"}, chain)
	typed, ok := clierr.As(err)
	if !ok || typed.Code != clierr.CodeUsage {
		t.Fatalf("expected usage error for excess precision, got %v", err)
	}
}

func TestParseStepsExactOutReversesRoute(t *testing.T) {
	chain, _ := id.ParseChain("ethereum")
	p, err := ParseSteps([]string{"v3-exact-out:USDC/WETH@3000:1000"}, chain)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}

	usdc, _ := id.ParseToken("USDC", chain)
	weth, _ := id.ParseToken("WETH", chain)
	path := p.Inputs()[0][32:]
	if !bytes.Equal(path[:20], common.HexToAddress(weth.Address).Bytes()) {
		t.Fatalf("expected reversed path to start at WETH, got %x", path[:20])
	}
	if !bytes.Equal(path[23:], common.HexToAddress(usdc.Address).Bytes()) {
		t.Fatalf("expected reversed path to end at USDC, got %x", path[23:])
	}
}

func TestParseStepsKindIsCaseInsensitive(t *testing.T) {
	chain, _ := id.ParseChain("ethereum")
	p, err := ParseSteps([]string{
		"V3-EXACT-OUT:USDC/WETH@3000:1000",
		"VAULT-DEPOSIT:0x00000000000000000000000000000000000000cc:prev",
		"Swap-Exact-In:0x1100000000000000000000000000000000000000000000000000000000000000:USDC/WETH:prev",
	}, chain)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}

	commands := p.Commands()
	want := []byte{
		byte(engine.CommandV3SwapExactOut),
		byte(engine.CommandVaultDeposit),
		byte(engine.CommandSwapExactIn),
	}
	if !bytes.Equal(commands, want) {
		t.Fatalf("uppercase kinds built wrong opcodes: got %x want %x", commands, want)
	}

	// Uppercase exact-out must still reverse the route.
	weth, _ := id.ParseToken("WETH", chain)
	path := p.Inputs()[0][32:]
	if !bytes.Equal(path[:20], common.HexToAddress(weth.Address).Bytes()) {
		t.Fatalf("expected reversed path to start at WETH, got %x", path[:20])
	}
}

func TestParseStepsSingleSwapSpec(t *testing.T) {
	chain, _ := id.ParseChain("ethereum")
	p, err := ParseSteps([]string{
		"swap-exact-in:0x1100000000000000000000000000000000000000000000000000000000000000:USDC/WETH:42",
	}, chain)
	if err != nil {
		t.Fatalf("ParseSteps failed: %v", err)
	}
	input := p.Inputs()[0]
	if input[0] != 0x11 {
		t.Fatalf("unexpected pool id word: %x", input[:32])
	}
	if got := new(big.Int).SetBytes(input[96:128]); got.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("unexpected amount word: %s", got)
	}
}

func TestParseStepsRejectsBadSpecs(t *testing.T) {
	chain, _ := id.ParseChain("ethereum")
	cases := []string{
		"",
		"v3-exact-in",
		"v3-exact-in:USDC:100",
		"v3-exact-in:USDC/WETH:100",
		"v3-exact-in:USDC/WETH@notafee:100",
		"v3-exact-in:USDC/WETH@3000:-5",
		"vault-deposit:nothex:1",
		"swap-exact-in:0x1234:USDC/WETH:1",
		"teleport:anywhere:1",
	}
	for _, spec := range cases {
		_, err := ParseSteps([]string{spec}, chain)
		if err == nil {
			t.Fatalf("expected error for spec %q", spec)
		}
		typed, ok := clierr.As(err)
		if !ok || typed.Code != clierr.CodeUsage {
			t.Fatalf("expected usage error for %q, got %v", spec, err)
		}
	}

	if _, err := ParseSteps(nil, chain); err == nil {
		t.Fatal("expected error for empty step list")
	}
}
