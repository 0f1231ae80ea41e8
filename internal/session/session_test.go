package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

type fakeAuth struct {
	loginResult    *models.AuthResult
	registerResult *models.AuthResult
	whoAmI         func(ctx context.Context, token string) (*models.Principal, error)
	err            error
	logoutCalls    int
	loginCalls     int
}

func (f *fakeAuth) Login(_ context.Context, _ models.LoginRequest) (*models.AuthResult, error) {
	f.loginCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.loginResult, nil
}

func (f *fakeAuth) Register(_ context.Context, _ models.RegisterRequest) (*models.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.registerResult, nil
}

func (f *fakeAuth) Logout(_ context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuth) WhoAmI(ctx context.Context, token string) (*models.Principal, error) {
	return f.whoAmI(ctx, token)
}

func principal(id string, role models.Role) models.Principal {
	return models.Principal{Id: id, Name: "Name " + id, Phone: "0170000000" + id, Role: role}
}

func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	snap := s.Snapshot()
	if (snap.User == nil) != (snap.Token == "") {
		t.Fatalf("session invariant violated: user=%v token=%q", snap.User, snap.Token)
	}
}

func TestStore_SetCredentialsAndLogout(t *testing.T) {
	ctx := context.Background()
	local := store.NewMemoryStore()
	s := NewStore(local)

	s.SetCredentials(ctx, principal("1", models.RoleUser), "tok-1")
	snap := s.Snapshot()
	if !snap.Authenticated() || snap.Token != "tok-1" || snap.Role() != models.RoleUser {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if persisted, _ := local.GetCredential(ctx); persisted != "tok-1" {
		t.Errorf("expected persisted tok-1, got %q", persisted)
	}

	s.Logout(ctx)
	snap = s.Snapshot()
	if snap.Authenticated() || snap.User != nil || snap.Token != "" {
		t.Fatalf("expected anonymous snapshot, got %+v", snap)
	}
	if _, err := local.GetCredential(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected persisted credential removed, got %v", err)
	}
}

func TestStore_IgnoresEmptyToken(t *testing.T) {
	s := NewStore(store.NewMemoryStore())
	s.SetCredentials(context.Background(), principal("1", models.RoleUser), "")
	if s.Snapshot().User != nil {
		t.Fatal("user stored without token")
	}
}

func TestStore_InvariantHoldsForRandomSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	s := NewStore(store.NewMemoryStore())

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			s.SetCredentials(ctx, principal("u", models.RoleAgent), "tok")
		case 1:
			s.SetCredentials(ctx, principal("u", models.RoleAgent), "")
		default:
			s.Logout(ctx)
		}
		checkInvariant(t, s)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore(store.NewMemoryStore())
	s.SetCredentials(context.Background(), principal("1", models.RoleUser), "tok")

	snap := s.Snapshot()
	snap.User.Name = "mutated"
	if s.Snapshot().User.Name == "mutated" {
		t.Fatal("snapshot shares memory with the store")
	}
}

func TestStore_InvalidateOnlyCurrentGeneration(t *testing.T) {
	ctx := context.Background()
	s := NewStore(store.NewMemoryStore())

	s.SetCredentials(ctx, principal("1", models.RoleUser), "old")
	_, oldGen := s.Credential()
	s.SetCredentials(ctx, principal("2", models.RoleUser), "new")

	if s.Invalidate(oldGen) {
		t.Fatal("stale generation must not clear a newer session")
	}
	if s.Snapshot().Token != "new" {
		t.Fatal("newer session was cleared")
	}

	_, gen := s.Credential()
	if !s.Invalidate(gen) {
		t.Fatal("expected current generation to be invalidated")
	}
	checkInvariant(t, s)
	if s.Snapshot().Authenticated() {
		t.Fatal("expected anonymous after invalidate")
	}
}

func TestService_Login(t *testing.T) {
	auth := &fakeAuth{loginResult: &models.AuthResult{User: principal("1", models.RoleAgent), Token: "tok"}}
	svc := NewService(NewStore(store.NewMemoryStore()), auth)

	user, err := svc.Login(context.Background(), models.LoginRequest{Phone: " 01700000001 ", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Role != models.RoleAgent {
		t.Errorf("expected agent, got %s", user.Role)
	}
	if !svc.Store().Snapshot().Authenticated() {
		t.Error("expected authenticated session")
	}
}

func TestService_LoginValidation(t *testing.T) {
	auth := &fakeAuth{}
	svc := NewService(NewStore(store.NewMemoryStore()), auth)

	if _, err := svc.Login(context.Background(), models.LoginRequest{Phone: "", Password: "x"}); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if auth.loginCalls != 0 {
		t.Fatal("validation failure reached the backend")
	}
}

func TestService_LoginWithoutToken(t *testing.T) {
	auth := &fakeAuth{loginResult: &models.AuthResult{User: principal("1", models.RoleUser)}}
	svc := NewService(NewStore(store.NewMemoryStore()), auth)

	if _, err := svc.Login(context.Background(), models.LoginRequest{Phone: "1", Password: "x"}); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	checkInvariant(t, svc.Store())
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name      string
		role      models.Role
		token     string
		wantErr   error
		wantAuthn bool
	}{
		{"user with token", models.RoleUser, "tok", nil, true},
		{"agent without token", models.RoleAgent, "", nil, false},
		{"admin rejected", models.RoleAdmin, "tok", ErrInvalidRole, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{registerResult: &models.AuthResult{User: principal("9", tt.role), Token: tt.token}}
			svc := NewService(NewStore(store.NewMemoryStore()), auth)

			_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "N", Phone: "1", Password: "p", Role: tt.role})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := svc.Store().Snapshot().Authenticated(); got != tt.wantAuthn {
				t.Errorf("authenticated = %v, want %v", got, tt.wantAuthn)
			}
			checkInvariant(t, svc.Store())
		})
	}
}

func TestService_LogoutCallsBackendOnlyWhenAuthenticated(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	svc := NewService(NewStore(store.NewMemoryStore()), auth)

	svc.Logout(ctx)
	if auth.logoutCalls != 0 {
		t.Fatal("anonymous logout should not reach the backend")
	}

	svc.Store().SetCredentials(ctx, principal("1", models.RoleUser), "tok")
	svc.Logout(ctx)
	if auth.logoutCalls != 1 {
		t.Fatalf("expected 1 backend logout, got %d", auth.logoutCalls)
	}
	if svc.Store().Snapshot().Authenticated() {
		t.Fatal("expected anonymous after logout")
	}
}

func TestService_RevalidateSuccess(t *testing.T) {
	ctx := context.Background()
	local := store.NewMemoryStore()
	_ = local.SaveCredential(ctx, "persisted")

	auth := &fakeAuth{whoAmI: func(_ context.Context, token string) (*models.Principal, error) {
		if token != "persisted" {
			t.Errorf("unexpected token %q", token)
		}
		p := principal("1", models.RoleAdmin)
		return &p, nil
	}}
	svc := NewService(NewStore(local), auth)

	// Before revalidation the persisted token is not part of the session
	checkInvariant(t, svc.Store())
	if svc.Store().Snapshot().Authenticated() {
		t.Fatal("session should start anonymous")
	}

	snap := svc.Revalidate(ctx)
	if !snap.Authenticated() || snap.Role() != models.RoleAdmin || snap.Token != "persisted" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestService_RevalidateFailureLogsOut(t *testing.T) {
	ctx := context.Background()
	local := store.NewMemoryStore()
	_ = local.SaveCredential(ctx, "bad")

	auth := &fakeAuth{whoAmI: func(context.Context, string) (*models.Principal, error) {
		return nil, errors.New("401")
	}}
	svc := NewService(NewStore(local), auth)

	if snap := svc.Revalidate(ctx); snap.Authenticated() {
		t.Fatal("expected anonymous session")
	}
	if _, err := local.GetCredential(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected persisted credential removed, got %v", err)
	}
}

func TestService_RevalidateWithoutToken(t *testing.T) {
	auth := &fakeAuth{whoAmI: func(context.Context, string) (*models.Principal, error) {
		t.Fatal("WhoAmI must not be called without a persisted token")
		return nil, nil
	}}
	svc := NewService(NewStore(store.NewMemoryStore()), auth)
	if svc.Revalidate(context.Background()).Authenticated() {
		t.Fatal("expected anonymous")
	}
}

func TestService_RevalidateExpiredJWT(t *testing.T) {
	ctx := context.Background()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	local := store.NewMemoryStore()
	_ = local.SaveCredential(ctx, token)
	auth := &fakeAuth{whoAmI: func(context.Context, string) (*models.Principal, error) {
		t.Fatal("expired token should not be revalidated remotely")
		return nil, nil
	}}
	svc := NewService(NewStore(local), auth)

	if svc.Revalidate(ctx).Authenticated() {
		t.Fatal("expected anonymous")
	}
	if _, err := local.GetCredential(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected expired credential removed, got %v", err)
	}
}

func TestService_RevalidateSkipsWhenNewerLoginWins(t *testing.T) {
	ctx := context.Background()
	local := store.NewMemoryStore()
	_ = local.SaveCredential(ctx, "old")

	release := make(chan struct{})
	started := make(chan struct{})
	auth := &fakeAuth{whoAmI: func(context.Context, string) (*models.Principal, error) {
		close(started)
		<-release
		p := principal("old", models.RoleUser)
		return &p, nil
	}}
	svc := NewService(NewStore(local), auth)

	done := make(chan Snapshot)
	go func() { done <- svc.Revalidate(ctx) }()

	<-started
	svc.Store().SetCredentials(ctx, principal("new", models.RoleAgent), "new")
	close(release)

	snap := <-done
	if snap.Token != "new" || snap.User.Id != "new" {
		t.Fatalf("stale revalidation overwrote newer session: %+v", snap)
	}
	if persisted, _ := local.GetCredential(ctx); persisted != "new" {
		t.Errorf("expected persisted token new, got %q", persisted)
	}
}

func TestService_RevalidateSkipsAfterConcurrentLogout(t *testing.T) {
	ctx := context.Background()
	local := store.NewMemoryStore()
	_ = local.SaveCredential(ctx, "tok")

	release := make(chan struct{})
	started := make(chan struct{})
	auth := &fakeAuth{whoAmI: func(context.Context, string) (*models.Principal, error) {
		close(started)
		<-release
		p := principal("1", models.RoleUser)
		return &p, nil
	}}
	svc := NewService(NewStore(local), auth)

	done := make(chan Snapshot)
	go func() { done <- svc.Revalidate(ctx) }()

	<-started
	svc.Store().Logout(ctx)
	close(release)

	if snap := <-done; snap.Authenticated() {
		t.Fatalf("revalidation resurrected a logged-out session: %+v", snap)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"opaque", "abc123", false},
		{"future exp", sign(jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), false},
		{"past exp", sign(jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true},
		{"bearer prefix", "Bearer " + sign(jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), true},
		{"no exp", sign(jwt.MapClaims{"sub": "1"}), false},
	}
	for _, tt := range tests {
		if got := tokenExpired(tt.token, now); got != tt.want {
			t.Errorf("%s: tokenExpired = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewPasswordChange(t *testing.T) {
	tests := []struct {
		name        string
		role        models.Role
		current     string
		next        string
		confirm     string
		wantErr     error
		wantCurrent string
	}{
		{name: "user with current", role: models.RoleUser, current: "old", next: "secret1", confirm: "secret1", wantCurrent: "old"},
		{name: "user without current", role: models.RoleUser, next: "secret1", confirm: "secret1", wantErr: ErrMissingCurrentPassword},
		{name: "agent without current", role: models.RoleAgent, next: "secret1", confirm: "secret1", wantErr: ErrMissingCurrentPassword},
		{name: "admin without current", role: models.RoleAdmin, next: "secret1", confirm: "secret1"},
		{name: "admin current dropped", role: models.RoleAdmin, current: "old", next: "secret1", confirm: "secret1"},
		{name: "mismatch", role: models.RoleUser, current: "old", next: "secret1", confirm: "secret2", wantErr: ErrPasswordMismatch},
		{name: "too short", role: models.RoleUser, current: "old", next: "abc", confirm: "abc", wantErr: ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewPasswordChange(tt.role, tt.current, tt.next, tt.confirm)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewPasswordChange() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if req.NewPassword != tt.next || req.CurrentPassword != tt.wantCurrent {
				t.Errorf("NewPasswordChange() = %+v", req)
			}
		})
	}
}
