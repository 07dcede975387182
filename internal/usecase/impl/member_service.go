// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"roster/config"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// memberService implements the MemberUsecase interface.
type memberService struct {
	txManager       repository.TransactionManager
	hasher          service.PasswordHasher
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// MemberServiceParams holds dependencies for memberService, injected by Fx.
type MemberServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewMemberService is the constructor for memberService. It receives all dependencies as interfaces.
func NewMemberService(params MemberServiceParams) usecase.MemberUsecase {
	defSize, maxSize := defaultPageSize, maxPageSize
	if params.Config != nil && params.Config.Auth != nil {
		if params.Config.Auth.DefaultPageSize > 0 {
			defSize = params.Config.Auth.DefaultPageSize
		}
		if params.Config.Auth.MaxPageSize > 0 {
			maxSize = params.Config.Auth.MaxPageSize
		}
	}

	return &memberService{
		txManager:       params.TxManager,
		hasher:          params.Hasher,
		defaultPageSize: defSize,
		maxPageSize:     maxSize,
		logger:          params.Logger,
	}
}

// Register orchestrates the complete member registration process.
func (srv *memberService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Member, error) {
	srv.logger.Info("Starting member registration", slog.String("email", input.Email))

	// The hash is only ever derived from a password that was non-empty
	// at the time of set.
	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password must not be empty")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registered *entity.Member

	// Execute the entire creation process within a single database transaction
	// to ensure data consistency (atomicity).
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.MemberRepo()

		// 1. Check if a member with this email already exists. The storage
		// unique index remains the final arbiter under concurrent requests.
		_, err := memberRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrMemberAlreadyExists.WrapMessage("member registration failed")
		}
		if !errors.Is(err, repository.ErrMemberNotFound) {
			return errors.Wrap(err, "failed to find member by email")
		}

		// 2. Create the member with the default user role.
		newMember := &entity.Member{
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Name:         input.Name,
			Address:      input.Address,
			Role:         entity.RoleUser,
		}

		if err := memberRepo.Create(ctx, newMember); err != nil {
			return errors.WithStack(err)
		}
		registered = newMember

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to execute member registration transaction", "error", err, "email", input.Email)

		return nil, errors.Wrap(err, "failed to execute member registration transaction")
	}
	srv.logger.Debug("Member registered successfully", "memberID", registered.ID)

	return registered, nil
}

// GetMember retrieves a single member by id.
func (srv *memberService) GetMember(ctx context.Context, memberID uuid.UUID) (*entity.Member, error) {
	var member *entity.Member

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.MemberRepo().FindByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return errors.Wrap(domainerrors.ErrMemberNotFound, "member lookup failed")
			}

			return errors.Wrap(err, "failed to find member by id")
		}
		member = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute member lookup")
	}

	return member, nil
}

// AuthenticateLookup resolves an email to the principal used by the
// authentication layer. The lookup itself distinguishes "unknown email"
// from a later password mismatch; collapsing the two into one user-facing
// answer is the login flow's job.
func (srv *memberService) AuthenticateLookup(ctx context.Context, email string) (*entity.Principal, error) {
	var principal *entity.Principal

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		member, err := repoFactory.MemberRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return errors.Wrap(domainerrors.ErrMemberNotFound, "authenticate lookup failed")
			}

			return errors.Wrap(err, "failed to find member by email")
		}
		principal = entity.PrincipalOf(member)

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute authenticate lookup")
	}

	return principal, nil
}

// VerifyPassword reports whether the candidate matches the member's stored
// hash. This is a pure read-verify; no state is mutated.
func (srv *memberService) VerifyPassword(ctx context.Context, memberID uuid.UUID, candidate string) (bool, error) {
	var matches bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		member, err := repoFactory.MemberRepo().FindByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return errors.Wrap(domainerrors.ErrMemberNotFound, "verify password failed")
			}

			return errors.Wrap(err, "failed to find member by id")
		}
		matches = srv.hasher.Check(candidate, member.PasswordHash)

		return nil
	})

	if err != nil {
		return false, errors.Wrap(err, "failed to execute password verification")
	}

	return matches, nil
}

// UpdateProfile applies a member's self-service profile update. The
// current-password check runs before any field mutation; the whole update
// commits atomically or not at all. The role is never touched here.
func (srv *memberService) UpdateProfile(ctx context.Context, memberID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Member, error) {
	srv.logger.Info("Updating member profile", "memberID", memberID)

	var updated *entity.Member

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.MemberRepo()

		// 1. Find the member.
		member, err := memberRepo.FindByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return errors.Wrap(domainerrors.ErrMemberNotFound, "profile update failed")
			}

			return errors.Wrap(err, "failed to find member by id")
		}

		// 2. Mandatory current-password gate, before any mutation.
		if !srv.hasher.Check(input.CurrentPassword, member.PasswordHash) {
			return domainerrors.ErrCurrentPasswordMismatch.WrapMessage("profile update rejected")
		}

		// 3. Optional password change: confirmation must match before any
		// hash is computed.
		if input.NewPassword != "" {
			if input.NewPassword != input.ConfirmPassword {
				return domainerrors.ErrPasswordConfirmMismatch.WrapMessage("profile update rejected")
			}

			newHash, err := srv.hasher.Hash(input.NewPassword)
			if err != nil {
				return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
			}
			member.PasswordHash = newHash
		}

		// 4. Re-validate uniqueness when the email actually changes.
		if input.Email != member.Email {
			if err := srv.checkEmailFree(ctx, memberRepo, input.Email); err != nil {
				return err
			}
		}

		// 5. Overwrite the profile fields and save explicitly.
		member.Name = input.Name
		member.Email = input.Email
		member.Address = input.Address

		if err := memberRepo.Update(ctx, member); err != nil {
			return errors.WithStack(err)
		}
		updated = member

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to execute profile update transaction", "error", err, "memberID", memberID)

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}
	srv.logger.Debug("Member profile updated", "memberID", updated.ID)

	return updated, nil
}

// AdminUpdate applies an administrative patch. There is no password gate;
// the authorization decision is the actor's admin role, passed explicitly.
func (srv *memberService) AdminUpdate(ctx context.Context, actor usecase.Actor, memberID uuid.UUID, patch *usecase.AdminPatch) (uuid.UUID, error) {
	if !actor.IsAdmin() {
		return uuid.Nil, domainerrors.ErrForbidden.WrapMessage("admin update requires the admin role")
	}

	srv.logger.Info("Applying admin update", "memberID", memberID, "actorID", actor.MemberID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.MemberRepo()

		member, err := memberRepo.FindByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return errors.Wrap(domainerrors.ErrMemberNotFound, "admin update failed")
			}

			return errors.Wrap(err, "failed to find member by id")
		}

		if patch.Email != nil && *patch.Email != member.Email {
			if err := srv.checkEmailFree(ctx, memberRepo, *patch.Email); err != nil {
				return err
			}
			member.Email = *patch.Email
		}
		if patch.Name != nil {
			member.Name = *patch.Name
		}
		if patch.Address != nil {
			member.Address = *patch.Address
		}
		if patch.Role != nil {
			// This is the explicit administrative path for role changes.
			if !patch.Role.IsValid() {
				return domainerrors.ErrValidationFailed.WrapMessage("unknown role: " + patch.Role.String())
			}
			member.Role = *patch.Role
		}

		if err := memberRepo.Update(ctx, member); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to execute admin update transaction", "error", err, "memberID", memberID)

		return uuid.Nil, errors.Wrap(err, "failed to execute admin update transaction")
	}

	return memberID, nil
}

// Delete removes a member permanently. Callers own follow-up concerns such
// as invalidating any live session of the deleted member.
func (srv *memberService) Delete(ctx context.Context, actor usecase.Actor, memberID uuid.UUID) error {
	if !actor.IsAdmin() && actor.MemberID != memberID {
		return domainerrors.ErrForbidden.WrapMessage("members may only delete their own account")
	}

	srv.logger.Info("Deleting member", "memberID", memberID, "actorID", actor.MemberID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.MemberRepo().Delete(ctx, memberID); err != nil {
			if errors.Is(err, repository.ErrMemberNotFound) {
				return errors.Wrap(domainerrors.ErrMemberNotFound, "member deletion failed")
			}

			return errors.WithStack(err)
		}

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to execute member deletion transaction", "error", err, "memberID", memberID)

		return errors.Wrap(err, "failed to execute member deletion transaction")
	}
	srv.logger.Debug("Member deleted", "memberID", memberID)

	return nil
}

// SearchAdminPage returns one page of the administrative member listing.
// A filter matching nothing yields an empty page with a zero total, not an
// error.
func (srv *memberService) SearchAdminPage(ctx context.Context, actor usecase.Actor, filter repository.SearchFilter, page repository.PageRequest) (*repository.Page, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WrapMessage("member search requires the admin role")
	}

	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = srv.defaultPageSize
	}
	if page.Size > srv.maxPageSize {
		page.Size = srv.maxPageSize
	}

	var result *repository.Page

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.MemberRepo().QueryPage(ctx, filter, page)
		if err != nil {
			return errors.Wrap(err, "failed to query member page")
		}
		result = found

		return nil
	})

	if err != nil {
		srv.logger.Warn("Failed to execute member search", "error", err)

		return nil, errors.Wrap(err, "failed to execute member search")
	}

	return result, nil
}

// checkEmailFree returns ErrMemberAlreadyExists when the email is taken.
func (srv *memberService) checkEmailFree(ctx context.Context, memberRepo repository.MemberRepository, email string) error {
	_, err := memberRepo.FindByEmail(ctx, email)
	if err == nil {
		return domainerrors.ErrMemberAlreadyExists.WrapMessage("email is already in use")
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return errors.Wrap(err, "failed to find member by email")
	}

	return nil
}
