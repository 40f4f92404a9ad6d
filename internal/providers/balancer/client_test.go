package balancer

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/providers"
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

var vaultAddr = common.HexToAddress("0xBA12222222228d8Ba445958a75a0704d566BF2C8")

// decodedBatchCall pulls the queryBatchSwap arguments back out of raw
// calldata so tests can assert on the wire encoding.
type decodedBatchCall struct {
	kind        uint8
	stepAmounts []*big.Int
	assets      []common.Address
	sender      common.Address
	recipient   common.Address
	internalIn  bool
	internalOut bool
}

func decodeBatchCall(t *testing.T, data string) decodedBatchCall {
	t.Helper()
	raw, err := hex.DecodeString(strings.TrimPrefix(data, "0x"))
	if err != nil {
		t.Fatalf("decode calldata: %v", err)
	}
	args, err := vaultABI.Methods["queryBatchSwap"].Inputs.Unpack(raw[4:])
	if err != nil {
		t.Fatalf("unpack calldata: %v", err)
	}

	out := decodedBatchCall{kind: args[0].(uint8), assets: args[2].([]common.Address)}
	steps := reflect.ValueOf(args[1])
	for i := 0; i < steps.Len(); i++ {
		out.stepAmounts = append(out.stepAmounts, steps.Index(i).FieldByName("Amount").Interface().(*big.Int))
	}
	funds := reflect.ValueOf(args[3])
	out.sender = funds.FieldByName("Sender").Interface().(common.Address)
	out.recipient = funds.FieldByName("Recipient").Interface().(common.Address)
	out.internalIn = funds.FieldByName("FromInternalBalance").Bool()
	out.internalOut = funds.FieldByName("ToInternalBalance").Bool()
	return out
}

func packDeltas(t *testing.T, deltas []*big.Int) string {
	t.Helper()
	out, err := vaultABI.Methods["queryBatchSwap"].Outputs.Pack(deltas)
	if err != nil {
		t.Fatalf("pack deltas: %v", err)
	}
	return "0x" + hex.EncodeToString(out)
}

func newClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	caller, err := ethclient.Dial(server.URL)
	if err != nil {
		t.Fatalf("dial mock rpc: %v", err)
	}
	return New(caller, vaultAddr)
}

func TestQuerySwapExactInBuildsOneStepBatch(t *testing.T) {
	var gotCall callParams
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		gotCall = call
		return packDeltas(t, []*big.Int{big.NewInt(1000), big.NewInt(-2000)}), nil
	})
	defer server.Close()
	c := newClient(t, server)

	var poolID [32]byte
	poolID[0] = 0x42
	delta, err := c.QuerySwapExactIn(context.Background(), providers.SingleSwap{
		PoolID:   poolID,
		AssetIn:  common.HexToAddress("0x01"),
		AssetOut: common.HexToAddress("0x02"),
		Amount:   big.NewInt(1000),
	})
	if err != nil {
		t.Fatalf("QuerySwapExactIn failed: %v", err)
	}
	if delta.Cmp(big.NewInt(-2000)) != 0 {
		t.Fatalf("expected raw output delta -2000, got %s", delta)
	}

	if !strings.EqualFold(gotCall.To, vaultAddr.Hex()) {
		t.Fatalf("expected call to vault, got %s", gotCall.To)
	}
	decoded := decodeBatchCall(t, gotCall.Data)
	if decoded.kind != swapKindGivenIn {
		t.Fatalf("expected GIVEN_IN kind, got %d", decoded.kind)
	}
	if len(decoded.stepAmounts) != 1 || decoded.stepAmounts[0].Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("unexpected step amounts: %v", decoded.stepAmounts)
	}
	if len(decoded.assets) != 2 {
		t.Fatalf("expected two assets, got %d", len(decoded.assets))
	}
	if decoded.sender != quoteOnlySender || decoded.recipient != quoteOnlySender {
		t.Fatalf("unexpected fund management addresses: %s %s", decoded.sender, decoded.recipient)
	}
	if decoded.internalIn || decoded.internalOut {
		t.Fatal("internal balances must be off for quote-only calls")
	}
}

func TestQuerySwapExactOutNegatesAmountOnWire(t *testing.T) {
	var gotCall callParams
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		gotCall = call
		return packDeltas(t, []*big.Int{big.NewInt(40), big.NewInt(-500)}), nil
	})
	defer server.Close()
	c := newClient(t, server)

	delta, err := c.QuerySwapExactOut(context.Background(), providers.SingleSwap{
		AssetIn:  common.HexToAddress("0x01"),
		AssetOut: common.HexToAddress("0x02"),
		Amount:   big.NewInt(500),
	})
	if err != nil {
		t.Fatalf("QuerySwapExactOut failed: %v", err)
	}
	if delta.Cmp(big.NewInt(40)) != 0 {
		t.Fatalf("expected input delta 40, got %s", delta)
	}

	decoded := decodeBatchCall(t, gotCall.Data)
	if decoded.kind != swapKindGivenOut {
		t.Fatalf("expected GIVEN_OUT kind, got %d", decoded.kind)
	}
	if decoded.stepAmounts[0].Cmp(big.NewInt(-500)) != 0 {
		t.Fatalf("expected negated wire amount -500, got %s", decoded.stepAmounts[0])
	}
}

func TestQuerySwapExactOutRejectsOversizedAmount(t *testing.T) {
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		t.Fatal("no rpc call expected")
		return "", nil
	})
	defer server.Close()
	c := newClient(t, server)

	amount := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	_, err := c.QuerySwapExactOut(context.Background(), providers.SingleSwap{Amount: amount})
	typed, ok := clierr.As(err)
	if !ok || typed.Code != clierr.CodeOverflow {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestQueryBatchSwapForwardsAllSteps(t *testing.T) {
	var gotCall callParams
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		gotCall = call
		return packDeltas(t, []*big.Int{big.NewInt(9), big.NewInt(0), big.NewInt(-11)}), nil
	})
	defer server.Close()
	c := newClient(t, server)

	steps := []providers.BatchSwapStep{
		{AssetInIndex: big.NewInt(0), AssetOutIndex: big.NewInt(1), Amount: big.NewInt(9)},
		{AssetInIndex: big.NewInt(1), AssetOutIndex: big.NewInt(2), Amount: big.NewInt(0)},
	}
	assets := []common.Address{common.HexToAddress("0x01"), common.HexToAddress("0x02"), common.HexToAddress("0x03")}
	deltas, err := c.QueryBatchSwapExactIn(context.Background(), steps, assets)
	if err != nil {
		t.Fatalf("QueryBatchSwapExactIn failed: %v", err)
	}
	if len(deltas) != 3 || deltas[2].Cmp(big.NewInt(-11)) != 0 {
		t.Fatalf("unexpected deltas: %v", deltas)
	}

	decoded := decodeBatchCall(t, gotCall.Data)
	if len(decoded.stepAmounts) != 2 || decoded.stepAmounts[1].Sign() != 0 {
		t.Fatalf("expected inner wildcard forwarded as zero, got %v", decoded.stepAmounts)
	}
	if len(decoded.assets) != 3 {
		t.Fatalf("expected three assets, got %d", len(decoded.assets))
	}
}

func TestQueryRevertMapsToProviderError(t *testing.T) {
	server := newMockRPCServer(t, func(call callParams) (string, error) {
		return "", fmt.Errorf("execution reverted: BAL#507")
	})
	defer server.Close()
	c := newClient(t, server)

	_, err := c.QuerySwapExactIn(context.Background(), providers.SingleSwap{Amount: big.NewInt(1)})
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
