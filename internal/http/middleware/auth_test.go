package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nexgenbattles/tournament-api/internal/domain"
	authmw "github.com/nexgenbattles/tournament-api/internal/http/middleware"
)

// ---------- Mocks ----------

type mockVerifier struct {
	claim *domain.IdentityClaim
	err   error
	calls int
}

func (m *mockVerifier) Verify(_ context.Context, raw string) (*domain.IdentityClaim, error) {
	m.calls++
	if raw == "" {
		return nil, errors.New("empty token")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.claim, nil
}

type mockUsersRepo struct {
	byEmail map[string]*domain.User
	findErr error
}

func (m *mockUsersRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byEmail[email], nil
}

func (m *mockUsersRepo) FindByID(context.Context, int64) (*domain.User, error) { return nil, nil }
func (m *mockUsersRepo) Onboard(context.Context, string, *domain.OnboardRequest) (*domain.User, error) {
	return nil, nil
}
func (m *mockUsersRepo) SetSubscribed(context.Context, string, time.Time) (*domain.User, error) {
	return nil, nil
}
func (m *mockUsersRepo) UpdateProfile(context.Context, string, domain.UserPatch) (*domain.User, error) {
	return nil, nil
}

// ---------- Helpers ----------

func protected(t *testing.T, verifier *mockVerifier, users *mockUsersRepo) (http.Handler, *bool, *domain.Principal) {
	t.Helper()

	handlerRan := false
	var seen domain.Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		if p, ok := authmw.PrincipalFrom(r); ok {
			seen = p
		}
		w.WriteHeader(http.StatusOK)
	})

	return authmw.RequireUser(verifier, users)(inner), &handlerRan, &seen
}

// ---------- Tests ----------

func TestRequireUserMissingHeader(t *testing.T) {
	verifier := &mockVerifier{}
	h, ran, _ := protected(t, verifier, &mockUsersRepo{})

	req := httptest.NewRequest("GET", "/api/user", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if *ran {
		t.Fatal("handler must not run without a credential")
	}
	if verifier.calls != 0 {
		t.Fatal("verifier must not be consulted without a header")
	}
}

func TestRequireUserInvalidToken(t *testing.T) {
	verifier := &mockVerifier{err: errors.New("audience mismatch")}
	h, ran, _ := protected(t, verifier, &mockUsersRepo{})

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if *ran {
		t.Fatal("handler must not run with an invalid token")
	}
}

func TestRequireUserMalformedHeaderIsRejected(t *testing.T) {
	// No scheme separator: token extraction yields an empty string which
	// the verifier rejects.
	verifier := &mockVerifier{claim: &domain.IdentityClaim{Email: "a@x.com"}}
	h, ran, _ := protected(t, verifier, &mockUsersRepo{})

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "just-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if *ran {
		t.Fatal("handler must not run")
	}
}

func TestRequireUserUnknownLocalUser(t *testing.T) {
	// A legitimately issued token for someone never provisioned locally is
	// 404, never 403.
	verifier := &mockVerifier{claim: &domain.IdentityClaim{Email: "ghost@x.com", Sub: "g1"}}
	h, ran, _ := protected(t, verifier, &mockUsersRepo{byEmail: map[string]*domain.User{}})

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if *ran {
		t.Fatal("handler must not run for an unprovisioned user")
	}
}

func TestRequireUserAttachesPrincipal(t *testing.T) {
	verifier := &mockVerifier{claim: &domain.IdentityClaim{Email: "alice@x.com", Name: "Alice", Sub: "s-1"}}
	users := &mockUsersRepo{byEmail: map[string]*domain.User{
		"alice@x.com": {ID: 7, Email: "alice@x.com", Role: domain.RoleAdmin},
	}}
	h, ran, seen := protected(t, verifier, users)

	req := httptest.NewRequest("GET", "/api/user", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !*ran {
		t.Fatal("handler should have run")
	}
	if seen.UserID != 7 {
		t.Fatalf("principal user id = %d, want 7", seen.UserID)
	}
	// Role comes from the local record, not the claim.
	if seen.Role != domain.RoleAdmin {
		t.Fatalf("principal role = %q, want ADMIN", seen.Role)
	}
	if seen.Email != "alice@x.com" || seen.Sub != "s-1" {
		t.Fatalf("principal claim not carried over: %+v", seen)
	}
}

func TestRequireUserReVerifiesEveryRequest(t *testing.T) {
	verifier := &mockVerifier{claim: &domain.IdentityClaim{Email: "alice@x.com"}}
	users := &mockUsersRepo{byEmail: map[string]*domain.User{
		"alice@x.com": {ID: 7, Email: "alice@x.com", Role: domain.RoleRegular},
	}}
	h, _, _ := protected(t, verifier, users)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/user", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if verifier.calls != 3 {
		t.Fatalf("verifier calls = %d, want 3 (no caching across requests)", verifier.calls)
	}
}
