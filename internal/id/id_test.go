package id

import (
	"strings"
	"testing"
)

func TestParseChainSlug(t *testing.T) {
	chain, err := ParseChain("ethereum")
	if err != nil {
		t.Fatalf("ParseChain failed: %v", err)
	}
	if chain.CAIP2 != "eip155:1" || chain.EVMChainID != 1 {
		t.Fatalf("unexpected chain: %+v", chain)
	}
}

func TestParseChainCAIP2(t *testing.T) {
	chain, err := ParseChain("eip155:8453")
	if err != nil {
		t.Fatalf("ParseChain failed: %v", err)
	}
	if chain.Slug != "base" {
		t.Fatalf("unexpected slug: %s", chain.Slug)
	}
}

func TestParseChainNumeric(t *testing.T) {
	chain, err := ParseChain("42161")
	if err != nil {
		t.Fatalf("ParseChain failed: %v", err)
	}
	if chain.Slug != "arbitrum" {
		t.Fatalf("unexpected slug: %s", chain.Slug)
	}
}

func TestParseChainUnknownIDStillResolves(t *testing.T) {
	chain, err := ParseChain("eip155:59144")
	if err != nil {
		t.Fatalf("ParseChain failed: %v", err)
	}
	if chain.EVMChainID != 59144 || chain.CAIP2 != "eip155:59144" {
		t.Fatalf("unexpected chain: %+v", chain)
	}
}

func TestParseChainRejectsGarbage(t *testing.T) {
	if _, err := ParseChain("not-a-chain"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ParseChain(""); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseTokenSymbol(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	token, err := ParseToken("usdc", chain)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if token.Symbol != "USDC" || token.Decimals != 6 {
		t.Fatalf("unexpected token: %+v", token)
	}
	if !strings.HasPrefix(token.Address, "0x") {
		t.Fatalf("expected address, got %s", token.Address)
	}
}

func TestParseTokenAddressOutsideRegistry(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	token, err := ParseToken("0x1111111111111111111111111111111111111111", chain)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if token.Symbol != "" || token.Decimals != 0 {
		t.Fatalf("expected unresolved metadata, got %+v", token)
	}
}

func TestParseTokenKnownAddressResolvesMetadata(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	token, err := ParseToken("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", chain)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if token.Symbol != "USDC" {
		t.Fatalf("expected USDC from registry, got %+v", token)
	}
}

func TestParseTokenUnknownSymbol(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	if _, err := ParseToken("NOTATOKEN", chain); err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}
