package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/timetrack/timesheet-system/internal/core/domain"
	"github.com/timetrack/timesheet-system/internal/core/ports"
)

type stubRevoker struct {
	revokedAt map[string]time.Time
	err       error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revokedAt: make(map[string]time.Time)}
}

func (s *stubRevoker) Revoke(_ context.Context, userID string, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.revokedAt[userID] = time.Now()
	return nil
}

func (s *stubRevoker) RevokedAt(_ context.Context, userID string) (time.Time, error) {
	return s.revokedAt[userID], s.err
}

func seedAccount(t *testing.T, repo *stubUserRepo, name, email, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("original1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	u, err := repo.Create(context.Background(), &domain.User{
		Name: name, Email: email, PasswordHash: string(hash), Role: role,
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func strptr(s string) *string { return &s }

func identity(u *domain.User) domain.Identity {
	return domain.Identity{UserID: u.ID, Role: u.Role}
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestUserService_Update_SelfStripsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)

	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Identity:     identity(alice),
		TargetUserID: alice.ID,
		Name:         strptr("Alice Cooper"),
		Role:         strptr(domain.RoleAdmin),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The role change is dropped, the rest of the patch still applies.
	if updated.Role != domain.RoleEmployee {
		t.Errorf("role must be unchanged for non-admin caller, got %q", updated.Role)
	}
	if updated.Name != "Alice Cooper" {
		t.Errorf("name must be updated, got %q", updated.Name)
	}
}

func TestUserService_Update_AdminMayChangeRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)
	boss := seedAccount(t, repo, "Boss", "boss@example.com", domain.RoleAdmin)

	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Identity:     identity(boss),
		TargetUserID: alice.ID,
		Role:         strptr(domain.RoleAdmin),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Errorf("admin role change must apply, got %q", updated.Role)
	}
}

func TestUserService_Update_AdminInvalidRoleRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)
	boss := seedAccount(t, repo, "Boss", "boss@example.com", domain.RoleAdmin)

	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Identity:     identity(boss),
		TargetUserID: alice.ID,
		Role:         strptr("owner"),
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Update_OtherEmployeeForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)
	bob := seedAccount(t, repo, "Bob", "bob@example.com", domain.RoleEmployee)

	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Identity:     identity(bob),
		TargetUserID: alice.ID,
		Name:         strptr("Hacked"),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), alice.ID)
	if stored.Name != "Alice" {
		t.Errorf("record must be unchanged after refusal, got name %q", stored.Name)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	boss := seedAccount(t, repo, "Boss", "boss@example.com", domain.RoleAdmin)

	_, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Identity:     identity(boss),
		TargetUserID: "user_missing",
		Name:         strptr("Nobody"),
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_PasswordRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	auth := NewAuthService(repo, "secret", time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)

	updated, err := svc.Update(context.Background(), ports.UpdateUserInput{
		Identity:     identity(alice),
		TargetUserID: alice.ID,
		Password:     strptr("brand-new-pass"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PasswordHash == "brand-new-pass" {
		t.Fatal("plaintext must never be persisted")
	}

	// The new password must authenticate; the old one must not.
	if _, _, err := auth.Login(context.Background(), "alice@example.com", "brand-new-pass"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, _, err := auth.Login(context.Background(), "alice@example.com", "original1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old password must be rejected, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestUserService_Delete_SelfAndRevokes(t *testing.T) {
	repo := newStubUserRepo()
	revoker := newStubRevoker()
	svc := NewUserService(repo, revoker, time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)

	if err := svc.Delete(context.Background(), identity(alice), alice.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), alice.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Error("record must be gone after delete")
	}
	if revoker.revokedAt[alice.ID].IsZero() {
		t.Error("outstanding tokens must be revoked on delete")
	}
}

func TestUserService_Delete_OtherEmployeeForbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)
	bob := seedAccount(t, repo, "Bob", "bob@example.com", domain.RoleEmployee)

	err := svc.Delete(context.Background(), identity(bob), alice.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), alice.ID); err != nil {
		t.Error("record must survive a refused delete")
	}
}

func TestUserService_Delete_AdminMayDeleteAnyone(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)
	boss := seedAccount(t, repo, "Boss", "boss@example.com", domain.RoleAdmin)

	if err := svc.Delete(context.Background(), identity(boss), alice.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	boss := seedAccount(t, repo, "Boss", "boss@example.com", domain.RoleAdmin)

	err := svc.Delete(context.Background(), identity(boss), "user_missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListAll tests
// ---------------------------------------------------------------------------

func TestUserService_ListAll_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, newStubRevoker(), time.Hour, discardLogger)
	alice := seedAccount(t, repo, "Alice", "alice@example.com", domain.RoleEmployee)
	boss := seedAccount(t, repo, "Boss", "boss@example.com", domain.RoleAdmin)

	if _, err := svc.ListAll(context.Background(), identity(alice)); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("employee must be refused, got %v", err)
	}

	users, err := svc.ListAll(context.Background(), identity(boss))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
