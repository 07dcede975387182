// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface on top of the
// account core's AuthenticateLookup.
type sessionService struct {
	members      usecase.MemberUsecase
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Members      usecase.MemberUsecase
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		members:      params.Members,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Login verifies the credentials and issues a signed access token.
// An unknown email and a wrong password both surface as the same
// invalid-credentials error so the response never reveals which one it was.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting member login", "email", input.Email)

	principal, err := srv.members.AuthenticateLookup(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrMemberNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to look up login principal")
	}

	if !srv.hasher.Check(input.Password, principal.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(principal.MemberID, principal.Role)
	if err != nil {
		srv.logger.Error("Failed to generate access token", "error", err)

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	member, err := srv.members.GetMember(ctx, principal.MemberID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load logged-in member")
	}

	srv.logger.Debug("Member logged in successfully", "memberID", principal.MemberID)

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		Member:      member,
	}, nil
}
