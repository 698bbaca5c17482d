package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/timetrack/timesheet-system/internal/core/domain"
	"github.com/timetrack/timesheet-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository (shared with user_service_test.go)
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass1234",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.Role != domain.RoleEmployee {
		t.Errorf("expected default role %q, got %q", domain.RoleEmployee, user.Role)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Register_TokenCarriesIdentity(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Bob", Email: "bob@example.com", Password: "pass1234", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Errorf("sub: want %q, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleAdmin {
		t.Errorf("role: want %q, got %v", domain.RoleAdmin, claims["role"])
	}
	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		t.Fatalf("token must carry an issued-at claim: %v", err)
	}
	if time.Since(iat.Time) > time.Minute {
		t.Errorf("issued-at not current: %v", iat.Time)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "pass1234", Role: "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	input := ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "pass1234"}
	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, _, err := svc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func registerUser(t *testing.T, svc *AuthService, email, password, role string) *domain.User {
	t.Helper()
	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Test User", Email: email, Password: password, Role: role,
	})
	if err != nil {
		t.Fatalf("seed register: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	seeded := registerUser(t, svc, "alice@example.com", "pass1234", "")

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.ID != seeded.ID {
		t.Errorf("expected user %q, got %q", seeded.ID, user.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	registerUser(t, svc, "alice@example.com", "pass1234", "")

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong-pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)
	registerUser(t, svc, "alice@example.com", "pass1234", "")

	_, _, wrongPass := svc.Login(context.Background(), "alice@example.com", "nope1234")
	_, _, unknown := svc.Login(context.Background(), "who@example.com", "nope1234")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) || !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Errorf("both failures must be ErrInvalidCredentials, got %v / %v", wrongPass, unknown)
	}
}
