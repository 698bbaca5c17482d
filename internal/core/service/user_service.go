package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/timetrack/timesheet-system/internal/core/domain"
	"github.com/timetrack/timesheet-system/internal/core/ports"
)

// UserService implements account management: self-service or admin edits,
// deletion, and the admin-only directory listing.
type UserService struct {
	repo     ports.UserRepository
	revoker  ports.TokenRevoker
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, revoker ports.TokenRevoker, tokenTTL time.Duration, logger zerolog.Logger) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{repo: repo, revoker: revoker, tokenTTL: tokenTTL, logger: logger}
}

// Update applies a patch to a user record. Ownership is enforced first;
// then the patch is projected onto the set of fields the caller's role is
// allowed to change. A role sent by a non-admin is dropped, not rejected,
// and the rest of the patch still applies.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.CanModifyUser(input.Identity, input.TargetUserID) {
		return nil, domain.ErrForbidden
	}

	upd, err := s.buildUpdate(input)
	if err != nil {
		return nil, err
	}

	if upd.Empty() {
		// Nothing survived the projection; report the current record.
		return s.repo.FindByID(ctx, input.TargetUserID)
	}

	updated, err := s.repo.Update(ctx, input.TargetUserID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", updated.ID).
		Str("updated_by", input.Identity.UserID).
		Msg("user updated")
	return updated, nil
}

// buildUpdate whitelists patch fields per caller role and hashes any new
// password. Plaintext passwords never reach the repository.
func (s *UserService) buildUpdate(input ports.UpdateUserInput) (ports.UserUpdate, error) {
	upd := ports.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
	}

	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return ports.UserUpdate{}, err
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}

	if input.Role != nil && input.Identity.Role == domain.RoleAdmin {
		if !domain.ValidRole(*input.Role) {
			return ports.UserUpdate{}, domain.ErrInvalidInput
		}
		upd.Role = input.Role
	}

	return upd, nil
}

// Delete permanently removes an account and revokes its outstanding
// tokens so a deleted user's bearer stops working immediately.
func (s *UserService) Delete(ctx context.Context, id domain.Identity, targetUserID string) error {
	if !domain.CanModifyUser(id, targetUserID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, targetUserID); err != nil {
		return err
	}

	if err := s.revoker.Revoke(ctx, targetUserID, s.tokenTTL); err != nil {
		// The account is gone; a failed revocation only means the token
		// dies at its natural expiry instead of now.
		s.logger.Warn().Err(err).Str("user_id", targetUserID).Msg("token revocation failed")
	}

	s.logger.Info().Str("user_id", targetUserID).Str("deleted_by", id.UserID).Msg("user deleted")
	return nil
}

// ListAll returns every user record. Route gating already restricts this
// to admins; the policy check here keeps the rule enforceable without the
// HTTP layer.
func (s *UserService) ListAll(ctx context.Context, id domain.Identity) ([]*domain.User, error) {
	if !domain.CanListAllUsers(id) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}
