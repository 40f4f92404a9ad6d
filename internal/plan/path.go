package plan

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
)

const (
	addressLength = 20
	feeLength     = 3
	hopLength     = addressLength + feeLength
	maxPoolFee    = 1_000_000
)

// EncodePath packs a token route into the packed path format the V3 quoter
// consumes: token, 3-byte fee, token, fee, ..., token. A route of n hops
// needs n+1 tokens and n fees.
func EncodePath(tokens []common.Address, fees []uint32) ([]byte, error) {
	if len(tokens) < 2 {
		return nil, clierr.New(clierr.CodeUsage, "swap path needs at least two tokens")
	}
	if len(fees) != len(tokens)-1 {
		return nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("swap path with %d tokens needs %d fees, got %d", len(tokens), len(tokens)-1, len(fees)))
	}
	path := make([]byte, 0, len(tokens)*addressLength+len(fees)*feeLength)
	for i, token := range tokens {
		path = append(path, token.Bytes()...)
		if i < len(fees) {
			fee := fees[i]
			if fee >= maxPoolFee {
				return nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("pool fee %d out of range", fee))
			}
			path = append(path, byte(fee>>16), byte(fee>>8), byte(fee))
		}
	}
	return path, nil
}

// ReversePath flips an encoded path into the hop order quoteExactOutput
// expects.
func ReversePath(path []byte) ([]byte, error) {
	if len(path) < hopLength+addressLength || (len(path)-addressLength)%hopLength != 0 {
		return nil, clierr.New(clierr.CodeUsage, fmt.Sprintf("malformed swap path of %d bytes", len(path)))
	}
	reversed := make([]byte, 0, len(path))
	tokenOffset := len(path) - addressLength
	reversed = append(reversed, path[tokenOffset:]...)
	for tokenOffset > 0 {
		feeOffset := tokenOffset - feeLength
		tokenOffset = feeOffset - addressLength
		reversed = append(reversed, path[feeOffset:feeOffset+feeLength]...)
		reversed = append(reversed, path[tokenOffset:tokenOffset+addressLength]...)
	}
	return reversed, nil
}
