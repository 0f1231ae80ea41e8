package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"banglapay-wallet-go/internal/models"
)

type fakeCreds struct {
	mu          sync.Mutex
	token       string
	generation  uint64
	invalidated []uint64
}

func (f *fakeCreds) Credential() (string, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.generation
}

func (f *fakeCreds) Invalidate(generation uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, generation)
	if generation != f.generation {
		return false
	}
	f.token = ""
	f.generation++
	return true
}

func (f *fakeCreds) switchSession(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	f.generation++
}

type testServer struct {
	mu     sync.Mutex
	hits   map[string]int
	auth   map[string]string
	bodies map[string]string
}

func (s *testServer) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[r.URL.Path]++
	s.auth[r.URL.Path] = r.Header.Get("authorization")
	s.bodies[r.URL.Path] = string(body)
}

func (s *testServer) hitsFor(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func setupTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeCreds, *testServer) {
	t.Helper()

	ts := &testServer{hits: map[string]int{}, auth: map[string]string{}, bodies: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.record(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/api/v1")
	if err != nil {
		t.Fatalf("Failed to parse server url: %v", err)
	}
	creds := &fakeCreds{token: "tok-1", generation: 1}
	return newClient(base, srv.Client(), creds), creds, ts
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func walletHandler(balance *float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/wallet/balance":
			b, _ := json.Marshal(map[string]any{"data": map[string]any{"balance": *balance}})
			writeJSON(w, http.StatusOK, string(b))
		case "/api/v1/wallet/top-up":
			*balance += 100
			writeJSON(w, http.StatusOK, `{"data":{"_id":"tx1","type":"add","amount":100,"createdAt":"2024-05-01T10:00:00Z"}}`)
		case "/api/v1/wallet/transactions":
			writeJSON(w, http.StatusOK, `{"transactions":[{"_id":"tx1","type":"add","amount":100}]}`)
		case "/api/v1/admin/agents":
			writeJSON(w, http.StatusOK, `{"data":[{"_id":"a1","name":"Karim","phone":"018","role":"agent"}]}`)
		case "/api/v1/admin/user/block":
			writeJSON(w, http.StatusOK, `{"message":"ok"}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"message":"not found"}`)
		}
	}
}

func TestClientSendsCredentialVerbatim(t *testing.T) {
	balance := 500.0
	client, _, ts := setupTestClient(t, walletHandler(&balance))

	got, err := client.Balance(context.Background())
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if got != 500 {
		t.Errorf("Balance() = %v, want 500", got)
	}
	if header := ts.auth["/api/v1/wallet/balance"]; header != "tok-1" {
		t.Errorf("authorization header = %q, want %q", header, "tok-1")
	}
}

func TestLoginSendsNoCredential(t *testing.T) {
	client, _, ts := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"user":{"_id":"u1","name":"Rahim","phone":"017","role":"user"},"token":"fresh"}`)
	})

	result, err := client.Login(context.Background(), models.LoginRequest{Phone: "017", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token != "fresh" || result.User.Id != "u1" || result.User.Role != models.RoleUser {
		t.Errorf("Login() = %+v", result)
	}
	if header := ts.auth["/api/v1/auth/login"]; header != "" {
		t.Errorf("login sent authorization %q", header)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(ts.bodies["/api/v1/auth/login"]), &body); err != nil {
		t.Fatalf("Failed to decode login body: %v", err)
	}
	if body["phone"] != "017" || body["password"] != "pw" {
		t.Errorf("login body = %v", body)
	}
}

func TestUnauthorizedInvalidatesCurrentGeneration(t *testing.T) {
	client, creds, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"jwt expired"}`)
	})

	_, err := client.Balance(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("Balance() error = %v, want unauthorized", err)
	}
	if len(creds.invalidated) != 1 || creds.invalidated[0] != 1 {
		t.Errorf("invalidated = %v, want [1]", creds.invalidated)
	}
	if token, _ := creds.Credential(); token != "" {
		t.Errorf("token after 401 = %q, want empty", token)
	}
}

func TestUnauthorizedOnExplicitTokenLeavesSession(t *testing.T) {
	client, creds, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"invalid credentials"}`)
	})

	if _, err := client.Login(context.Background(), models.LoginRequest{Phone: "017", Password: "bad"}); err == nil {
		t.Fatal("Login() expected error")
	}
	if len(creds.invalidated) != 0 {
		t.Errorf("invalidated = %v, want none", creds.invalidated)
	}
}

func TestErrorMessageSurfaced(t *testing.T) {
	client, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"Insufficient balance"}`)
	})

	_, err := client.SendMoney(context.Background(), "017", 50)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("SendMoney() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if got := MessageOf(err, "Transaction failed"); got != "Insufficient balance" {
		t.Errorf("MessageOf() = %q", got)
	}
}

func TestErrorWithoutMessageUsesFallback(t *testing.T) {
	client, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `oops`)
	})

	_, err := client.Withdraw(context.Background(), 10)
	if err == nil {
		t.Fatal("Withdraw() expected error")
	}
	if got := MessageOf(err, "Transaction failed"); got != "Transaction failed" {
		t.Errorf("MessageOf() = %q, want fallback", got)
	}
}

func TestCachedQueryInvalidatedByMutation(t *testing.T) {
	balance := 500.0
	client, _, ts := setupTestClient(t, walletHandler(&balance))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.Balance(ctx); err != nil {
			t.Fatalf("Balance() error = %v", err)
		}
	}
	if n := ts.hitsFor("/api/v1/wallet/balance"); n != 1 {
		t.Fatalf("balance fetched %d times, want 1", n)
	}

	tx, err := client.TopUp(ctx, 100)
	if err != nil {
		t.Fatalf("TopUp() error = %v", err)
	}
	if tx.Id != "tx1" || tx.Type != models.TransactionAdd {
		t.Errorf("TopUp() = %+v", tx)
	}

	got, err := client.Balance(ctx)
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if got != 600 {
		t.Errorf("Balance() after top-up = %v, want 600", got)
	}
	if n := ts.hitsFor("/api/v1/wallet/balance"); n != 2 {
		t.Errorf("balance fetched %d times, want 2", n)
	}
}

func TestCacheScopedToSession(t *testing.T) {
	balance := 500.0
	client, creds, ts := setupTestClient(t, walletHandler(&balance))
	ctx := context.Background()

	if _, err := client.Balance(ctx); err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	creds.switchSession("tok-2")
	if _, err := client.Balance(ctx); err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if n := ts.hitsFor("/api/v1/wallet/balance"); n != 2 {
		t.Errorf("balance fetched %d times, want 2", n)
	}
	if header := ts.auth["/api/v1/wallet/balance"]; header != "tok-2" {
		t.Errorf("authorization = %q, want tok-2", header)
	}
}

func TestBlockRefreshesAgentList(t *testing.T) {
	balance := 500.0
	client, _, ts := setupTestClient(t, walletHandler(&balance))
	ctx := context.Background()

	if _, err := client.Agents(ctx); err != nil {
		t.Fatalf("Agents() error = %v", err)
	}
	if _, err := client.Balance(ctx); err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if err := client.BlockUser(ctx, "a1"); err != nil {
		t.Fatalf("BlockUser() error = %v", err)
	}
	if _, err := client.Agents(ctx); err != nil {
		t.Fatalf("Agents() error = %v", err)
	}
	if _, err := client.Balance(ctx); err != nil {
		t.Fatalf("Balance() error = %v", err)
	}

	if n := ts.hitsFor("/api/v1/admin/agents"); n != 2 {
		t.Errorf("agents fetched %d times, want 2", n)
	}
	if n := ts.hitsFor("/api/v1/wallet/balance"); n != 1 {
		t.Errorf("balance fetched %d times, want 1", n)
	}
	if body := ts.bodies["/api/v1/admin/user/block"]; body != `{"userId":"a1"}` {
		t.Errorf("block body = %s", body)
	}
}

func TestTransactionQueryParams(t *testing.T) {
	var got url.Values
	client, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"data":{"transactions":[]}}`)
	})

	txs, err := client.Transactions(context.Background(), models.TransactionQuery{Page: 2, Limit: 10, Type: "send-money"})
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("Transactions() = %v, want empty", txs)
	}
	if got.Get("page") != "2" || got.Get("limit") != "10" || got.Get("type") != "send-money" {
		t.Errorf("query = %v", got)
	}
	if got.Has("startDate") {
		t.Errorf("query carried empty startDate: %v", got)
	}
}

func TestTransportFailure(t *testing.T) {
	base, _ := url.Parse("http://127.0.0.1:1/api/v1")
	client := newClient(base, http.DefaultClient, &fakeCreds{})

	_, err := client.Balance(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Balance() error = %v, want *APIError", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0", apiErr.Status)
	}
	if got := MessageOf(err, "Transaction failed"); got != "Transaction failed" {
		t.Errorf("MessageOf() = %q, want fallback", got)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(models.ApiConfig{BaseURL: "localhost"}, &fakeCreds{})
	if err == nil {
		t.Fatal("NewClient() expected error for missing scheme")
	}
}

func TestAcceptedSendWithoutTransactionBody(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantId string
	}{
		{"success message only", `{"success":true,"message":"Money sent successfully"}`, ""},
		{"nested transaction and wallet", `{"data":{"transaction":{"_id":"tx9","type":"send-money","amount":50},"wallet":{"_id":"w1","balance":450}}}`, "tx9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := 500.0
			wallet := walletHandler(&balance)
			client, _, ts := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/api/v1/wallet/send-money" {
					writeJSON(w, http.StatusCreated, tt.body)
					return
				}
				wallet(w, r)
			})
			ctx := context.Background()

			if _, err := client.Balance(ctx); err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if _, err := client.Transactions(ctx, models.TransactionQuery{}); err != nil {
				t.Fatalf("Transactions() error = %v", err)
			}

			tx, err := client.SendMoney(ctx, "017", 50)
			if err != nil {
				t.Fatalf("SendMoney() error = %v, want nil", err)
			}
			if tt.wantId == "" && tx != nil {
				t.Errorf("SendMoney() = %+v, want nil transaction", tx)
			}
			if tt.wantId != "" && (tx == nil || tx.Id != tt.wantId) {
				t.Errorf("SendMoney() = %+v, want id %s", tx, tt.wantId)
			}
			if n := ts.hitsFor("/api/v1/wallet/send-money"); n != 1 {
				t.Errorf("send-money hit %d times, want 1", n)
			}

			if _, err := client.Balance(ctx); err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if _, err := client.Transactions(ctx, models.TransactionQuery{}); err != nil {
				t.Fatalf("Transactions() error = %v", err)
			}
			if n := ts.hitsFor("/api/v1/wallet/balance"); n != 2 {
				t.Errorf("balance fetched %d times, want 2", n)
			}
			if n := ts.hitsFor("/api/v1/wallet/transactions"); n != 2 {
				t.Errorf("transactions fetched %d times, want 2", n)
			}
		})
	}
}

func TestAcceptedProfileUpdateWithoutUserBody(t *testing.T) {
	client, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"Profile updated"}`)
	})

	p, err := client.UpdateProfile(context.Background(), models.UpdateProfileRequest{Name: "Rahim"})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v, want nil", err)
	}
	if p != nil {
		t.Errorf("UpdateProfile() = %+v, want nil principal", p)
	}
}

func TestPasswordChangeRefreshesProfile(t *testing.T) {
	client, _, ts := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/me":
			writeJSON(w, http.StatusOK, `{"user":{"_id":"u1","name":"Rahim","phone":"017","role":"user"}}`)
		default:
			writeJSON(w, http.StatusOK, `{"message":"ok"}`)
		}
	})
	ctx := context.Background()

	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if err := client.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: "old123", NewPassword: "new123"}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if err := client.AdminChangeUserPassword(ctx, "u1", "reset1"); err != nil {
		t.Fatalf("AdminChangeUserPassword() error = %v", err)
	}
	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("Me() error = %v", err)
	}

	if n := ts.hitsFor("/api/v1/auth/me"); n != 3 {
		t.Errorf("me fetched %d times, want 3", n)
	}
	if body := ts.bodies["/api/v1/admin/user/u1/password"]; body != `{"newPassword":"reset1"}` {
		t.Errorf("reset body = %s", body)
	}
}
