package reserve

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// mockRPC serves getAccountInfo, getMultipleAccounts and getProgramAccounts
// from raw account JSON keyed by address.
type mockRPC struct {
	t        *testing.T
	mu       sync.Mutex
	accounts map[string]string
	methods  []string
}

func newMockRPC(t *testing.T, fixtures ...string) (*mockRPC, *rpc.Client) {
	t.Helper()
	m := &mockRPC{t: t, accounts: map[string]string{}}
	for _, name := range fixtures {
		raw, err := os.ReadFile(filepath.Join("core", "testdata", name+".json"))
		require.NoError(t, err)
		fixture := gjson.ParseBytes(raw)
		m.set(fixture.Get("pubkey").String(), fixture.Get("account").Raw)
	}
	srv := httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(srv.Close)
	return m, rpc.New(srv.URL)
}

func (m *mockRPC) set(address, accountJSON string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[address] = accountJSON
}

func (m *mockRPC) remove(address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, address)
}

func (m *mockRPC) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.methods...)
}

func (m *mockRPC) lookup(address string) string {
	if acc, ok := m.accounts[address]; ok {
		return acc
	}
	return "null"
}

func (m *mockRPC) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := gjson.ParseBytes(body)
	method := req.Get("method").String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods = append(m.methods, method)

	var result string
	switch method {
	case "getAccountInfo":
		result = fmt.Sprintf(`{"context":{"slot":42},"value":%s}`, m.lookup(req.Get("params.0").String()))
	case "getMultipleAccounts":
		var values []string
		for _, key := range req.Get("params.0").Array() {
			values = append(values, m.lookup(key.String()))
		}
		result = fmt.Sprintf(`{"context":{"slot":42},"value":[%s]}`, strings.Join(values, ","))
	case "getProgramAccounts":
		prefix := req.Get("params.1.filters.0.memcmp.bytes").String()
		var keyed []string
		for address, acc := range m.accounts {
			if gjson.Get(acc, "owner").String() != req.Get("params.0").String() {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(gjson.Get(acc, "data.0").String())
			if err != nil || len(data) < 8 || solana.Base58(data[:8]).String() != prefix {
				continue
			}
			keyed = append(keyed, fmt.Sprintf(`{"pubkey":%q,"account":%s}`, address, acc))
		}
		result = "[" + strings.Join(keyed, ",") + "]"
	default:
		m.t.Errorf("unexpected rpc method %s", method)
		http.Error(w, "unexpected method", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.Get("id").Raw, result)
}
