package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"roster/config"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/infra/auth"
	"roster/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// sessionServiceFixtures bundles a session service with its member service
// fixtures so tests can stub the repository and inspect issued tokens.
type sessionServiceFixtures struct {
	memberServiceFixtures

	session  usecase.SessionUsecase
	tokenSvc service.TokenService
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	t.Helper()

	memberFx := createTestMemberService(t)

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	session := NewSessionService(SessionServiceParams{
		Members:      memberFx.service,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenSvc,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return sessionServiceFixtures{
		memberServiceFixtures: memberFx,
		session:               session,
		tokenSvc:              tokenSvc,
	}
}

func TestSessionService_Login(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	member := testMember(t, "p1")

	fx.memberRepo.On("FindByEmail", ctx, member.Email).Return(member, nil)
	fx.memberRepo.On("FindByID", ctx, member.ID).Return(member, nil)

	output, err := fx.session.Login(ctx, &usecase.LoginInput{
		Email:    member.Email,
		Password: "p1",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.NotEmpty(t, output.AccessToken)
	require.NotNil(t, output.Member)
	assert.Equal(t, member.ID, output.Member.ID)
	assert.Equal(t, member.Email, output.Member.Email)

	// The issued token round-trips through validation with the same identity.
	claims, err := fx.tokenSvc.ValidateAccessToken(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, member.ID, claims.MemberID)
	assert.Equal(t, member.Role, claims.Role)
}

func TestSessionService_Login_UnknownEmail(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()

	fx.memberRepo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, repository.ErrMemberNotFound)

	_, err := fx.session.Login(ctx, &usecase.LoginInput{
		Email:    "nobody@x.com",
		Password: "p1",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestSessionService_Login_WrongPassword(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	member := testMember(t, "p1")

	fx.memberRepo.On("FindByEmail", ctx, member.Email).Return(member, nil)

	_, err := fx.session.Login(ctx, &usecase.LoginInput{
		Email:    member.Email,
		Password: "wrong",
	})

	require.Error(t, err)
	// A wrong password is indistinguishable from an unknown email.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
