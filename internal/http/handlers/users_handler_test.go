package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nexgenbattles/tournament-api/internal/domain"
	"github.com/nexgenbattles/tournament-api/internal/http/handlers"
	"github.com/nexgenbattles/tournament-api/internal/service"
)

// ---------- Mocks ----------

type mockUsersStore struct {
	byEmail      map[string]*domain.User
	onboardCalls int
}

func newMockUsersStore() *mockUsersStore {
	return &mockUsersStore{byEmail: map[string]*domain.User{}}
}

func (m *mockUsersStore) seed(u domain.User) *domain.User {
	cp := u
	m.byEmail[u.Email] = &cp
	return &cp
}

func (m *mockUsersStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUsersStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUsersStore) Onboard(_ context.Context, email string, in *domain.OnboardRequest) (*domain.User, error) {
	m.onboardCalls++
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	u.Name = in.Name
	u.PhoneNumber = in.PhoneNumber
	u.Age = in.Age
	u.InstagramID = in.InstagramID
	u.BgmiID = in.BgmiID
	u.Gender = in.Gender
	u.InterestedGame = in.InterestedGame
	u.Image = in.Image
	u.IsOnboarded = true
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *mockUsersStore) SetSubscribed(_ context.Context, email string, at time.Time) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	u.IsSubscribed = true
	u.SubscribedAt = &at
	cp := *u
	return &cp, nil
}

func (m *mockUsersStore) UpdateProfile(_ context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.InterestedGame != nil {
		u.InterestedGame = *patch.InterestedGame
	}
	cp := *u
	return &cp, nil
}

type mockContactsStore struct {
	nextID   int64
	messages []domain.ContactMessage
}

func (m *mockContactsStore) Create(_ context.Context, in *domain.ContactReq) (*domain.ContactMessage, error) {
	m.nextID++
	msg := domain.ContactMessage{
		ID: m.nextID, Name: in.Name, Email: in.Email, Message: in.Message,
		CreatedAt: time.Now(),
	}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

// ---------- Helpers ----------

type usersFixture struct {
	users    *mockUsersStore
	contacts *mockContactsStore
	handler  *handlers.UsersHandler
}

func newUsersFixture() *usersFixture {
	users := newMockUsersStore()
	contacts := &mockContactsStore{}
	svc := service.NewUserService(users, contacts, nil)
	return &usersFixture{users: users, contacts: contacts, handler: handlers.NewUsersHandler(svc)}
}

func (f *usersFixture) serve(p domain.Principal, method, path string, body any) *httptest.ResponseRecorder {
	return serveJSON(f.handler.Routes(fakeAuth(p)), method, path, body)
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) domain.User {
	t.Helper()
	var out struct {
		User domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out.User
}

func principalFor(u *domain.User) domain.Principal {
	return domain.Principal{
		IdentityClaim: domain.IdentityClaim{Email: u.Email, Name: u.Name},
		UserID:        u.ID,
		Role:          u.Role,
	}
}

// ---------- Tests ----------

func TestMeReturnsLocalRecord(t *testing.T) {
	f := newUsersFixture()
	u := f.users.seed(domain.User{ID: 7, Email: "alice@x.com", Name: "Alice", Role: domain.RoleRegular})

	rec := f.serve(principalFor(u), "GET", "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeUser(t, rec)
	if got.ID != 7 || got.Email != "alice@x.com" {
		t.Fatalf("user = %+v", got)
	}
}

func TestOnboardAppliesProfile(t *testing.T) {
	f := newUsersFixture()
	u := f.users.seed(domain.User{ID: 7, Email: "alice@x.com", Role: domain.RoleRegular})

	rec := f.serve(principalFor(u), "POST", "/onboard", map[string]any{
		"name":           "Alice",
		"phoneNumber":    "555-1234",
		"intrested_game": "BGMI",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	got := decodeUser(t, rec)
	if !got.IsOnboarded {
		t.Fatal("onboarding must flip isOnboarded")
	}
	if got.Name != "Alice" || got.PhoneNumber != "555-1234" || got.InterestedGame != "BGMI" {
		t.Fatalf("profile not applied: %+v", got)
	}
}

func TestOnboardMissingFields(t *testing.T) {
	f := newUsersFixture()
	u := f.users.seed(domain.User{ID: 7, Email: "alice@x.com", Role: domain.RoleRegular})

	cases := []struct {
		name string
		body map[string]any
	}{
		{"no name", map[string]any{"phoneNumber": "555-1234"}},
		{"no phone", map[string]any{"name": "Alice"}},
		{"empty body", map[string]any{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.serve(principalFor(u), "POST", "/onboard", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
	if f.users.onboardCalls != 0 {
		t.Fatal("validation failures must not reach the repo")
	}
}

func TestSubscribeStampsTime(t *testing.T) {
	f := newUsersFixture()
	u := f.users.seed(domain.User{ID: 7, Email: "alice@x.com", Role: domain.RoleRegular})

	before := time.Now()
	rec := f.serve(principalFor(u), "POST", "/subscribed", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeUser(t, rec)
	if !got.IsSubscribed {
		t.Fatal("subscribe must flip isSubscribed")
	}
	if got.SubscribedAt == nil || got.SubscribedAt.Before(before.Add(-time.Second)) {
		t.Fatalf("subscribedAt = %v", got.SubscribedAt)
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	f := newUsersFixture()
	u := f.users.seed(domain.User{ID: 7, Email: "alice@x.com", Name: "Alice", Role: domain.RoleRegular})

	rec := f.serve(principalFor(u), "PUT", "/", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if f.users.byEmail["alice@x.com"].Name != "Alice" {
		t.Fatal("empty patch must not change the record")
	}
}

func TestUpdateProfileField(t *testing.T) {
	f := newUsersFixture()
	u := f.users.seed(domain.User{ID: 7, Email: "alice@x.com", Name: "Alice", Role: domain.RoleRegular})

	rec := f.serve(principalFor(u), "PUT", "/", map[string]any{"intrested_game": "Valorant"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeUser(t, rec); got.InterestedGame != "Valorant" {
		t.Fatalf("intrested_game = %q", got.InterestedGame)
	}
}

func TestContactStoresMessage(t *testing.T) {
	f := newUsersFixture()

	rec := f.serve(domain.Principal{}, "POST", "/contact", map[string]any{
		"name":    "Bob",
		"email":   "bob@x.com",
		"message": "when is the next tournament?",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(f.contacts.messages) != 1 || f.contacts.messages[0].Email != "bob@x.com" {
		t.Fatalf("stored = %+v", f.contacts.messages)
	}
}

func TestContactValidationFailureIsBadRequest(t *testing.T) {
	f := newUsersFixture()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing message", map[string]any{"name": "Bob", "email": "bob@x.com"}},
		{"missing email", map[string]any{"name": "Bob", "message": "hi"}},
		{"bad email", map[string]any{"name": "Bob", "email": "not-an-email", "message": "hi"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.serve(domain.Principal{}, "POST", "/contact", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
	if len(f.contacts.messages) != 0 {
		t.Fatal("invalid submissions must not be stored")
	}
}
