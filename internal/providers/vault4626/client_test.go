package vault4626

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
)

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type callParams struct {
	To   string `json:"to"`
	Data string `json:"input"`
}

func TestPreviewCallsTargetVaultFromArgument(t *testing.T) {
	vaultA := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	vaultB := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	var calls []callParams
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		calls = append(calls, call)
		out, err := previewABI.Methods["previewDeposit"].Outputs.Pack(big.NewInt(int64(len(calls)) * 100))
		if err != nil {
			return "", err
		}
		return "0x" + hex.EncodeToString(out), nil
	})
	defer server.Close()

	caller, err := ethclient.Dial(server.URL)
	if err != nil {
		t.Fatalf("dial mock rpc: %v", err)
	}
	c := New(caller)

	first, err := c.PreviewDeposit(context.Background(), vaultA, big.NewInt(1))
	if err != nil {
		t.Fatalf("PreviewDeposit failed: %v", err)
	}
	second, err := c.PreviewRedeem(context.Background(), vaultB, big.NewInt(2))
	if err != nil {
		t.Fatalf("PreviewRedeem failed: %v", err)
	}
	if first.Cmp(big.NewInt(100)) != 0 || second.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("unexpected results: %s %s", first, second)
	}
	if len(calls) != 2 {
		t.Fatalf("expected two calls, got %d", len(calls))
	}
	if !strings.EqualFold(calls[0].To, vaultA.Hex()) || !strings.EqualFold(calls[1].To, vaultB.Hex()) {
		t.Fatalf("vault address not taken per call: %s %s", calls[0].To, calls[1].To)
	}
}

func TestPreviewSelectorsPerMethod(t *testing.T) {
	var selectors []string
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		raw := strings.TrimPrefix(call.Data, "0x")
		selectors = append(selectors, raw[:8])
		out, err := previewABI.Methods["previewMint"].Outputs.Pack(big.NewInt(1))
		if err != nil {
			return "", err
		}
		return "0x" + hex.EncodeToString(out), nil
	})
	defer server.Close()

	caller, err := ethclient.Dial(server.URL)
	if err != nil {
		t.Fatalf("dial mock rpc: %v", err)
	}
	c := New(caller)
	vault := common.HexToAddress("0x01")

	if _, err := c.PreviewMint(context.Background(), vault, big.NewInt(1)); err != nil {
		t.Fatalf("PreviewMint failed: %v", err)
	}
	if _, err := c.PreviewWithdraw(context.Background(), vault, big.NewInt(1)); err != nil {
		t.Fatalf("PreviewWithdraw failed: %v", err)
	}

	want := []string{
		hex.EncodeToString(previewABI.Methods["previewMint"].ID),
		hex.EncodeToString(previewABI.Methods["previewWithdraw"].ID),
	}
	for i := range want {
		if selectors[i] != want[i] {
			t.Fatalf("call %d used selector %s, want %s", i, selectors[i], want[i])
		}
	}
}

func TestPreviewRevertMapsToProviderError(t *testing.T) {
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		return "", fmt.Errorf("execution reverted: ERC4626: deposit more than max")
	})
	defer server.Close()

	caller, err := ethclient.Dial(server.URL)
	if err != nil {
		t.Fatalf("dial mock rpc: %v", err)
	}
	c := New(caller)

	_, err = c.PreviewDeposit(context.Background(), common.HexToAddress("0x01"), big.NewInt(1))
	typed, ok := clierr.As(err)
	if !ok || typed.Code != clierr.CodeProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func newMockRPCServer(t *testing.T, respond func(callParams) (string, error)) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	handler := func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		switch req.Method {
		case "eth_call":
			var call callParams
			if len(req.Params) > 0 {
				if err := json.Unmarshal(req.Params[0], &call); err != nil {
					writeRPCError(w, req.ID, -32602, err.Error())
					return
				}
			}
			mu.Lock()
			result, err := respond(call)
			mu.Unlock()
			if err != nil {
				writeRPCError(w, req.ID, 3, err.Error())
				return
			}
			writeRPCResult(w, req.ID, result)
		default:
			writeRPCError(w, req.ID, -32601, fmt.Sprintf("method not supported in test: %s", req.Method))
		}
	}

	return httptest.NewServer(http.HandlerFunc(handler))
}

func writeRPCResult(w http.ResponseWriter, id json.RawMessage, result any) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%q}`, rawIDOrDefault(id), result)
}

func writeRPCError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":%d,"message":%q}}`, rawIDOrDefault(id), code, message)
}

func rawIDOrDefault(id json.RawMessage) string {
	if len(id) == 0 {
		return "1"
	}
	return string(id)
}
