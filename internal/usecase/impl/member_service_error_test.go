package impl

import (
	"context"
	"testing"

	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	existing := testMember(t, "p1")

	fx.memberRepo.On("FindByEmail", ctx, existing.Email).Return(existing, nil)
	// No Create expectation: a duplicate must not write anything.

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    existing.Email,
		Password: "p2",
		Name:     "B",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberAlreadyExists))
}

func TestMemberService_Register_EmptyPassword(t *testing.T) {
	fx := createTestMemberService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "a@x.com",
		Password: "",
		Name:     "A",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestMemberService_GetMember_NotFound(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	unknown := uuid.New()

	fx.memberRepo.On("FindByID", ctx, unknown).Return(nil, repository.ErrMemberNotFound)

	_, err := fx.service.GetMember(ctx, unknown)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_AuthenticateLookup_UnknownEmail(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()

	fx.memberRepo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, repository.ErrMemberNotFound)

	_, err := fx.service.AuthenticateLookup(ctx, "nobody@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_VerifyPassword_UnknownID(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	unknown := uuid.New()

	fx.memberRepo.On("FindByID", ctx, unknown).Return(nil, repository.ErrMemberNotFound)

	_, err := fx.service.VerifyPassword(ctx, unknown, "p1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_UpdateProfile_WrongCurrentPassword(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	existing := testMember(t, "p1")
	originalHash := existing.PasswordHash

	fx.memberRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	// No Update expectation: a rejected check must not mutate anything.

	_, err := fx.service.UpdateProfile(ctx, existing.ID, &usecase.UpdateProfileInput{
		CurrentPassword: "wrong",
		Name:            "B",
		Email:           "b@x.com",
		Address:         "elsewhere",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCurrentPasswordMismatch))

	// Idempotent rejection: the record is untouched.
	assert.Equal(t, "A", existing.Name)
	assert.Equal(t, "a@x.com", existing.Email)
	assert.Equal(t, originalHash, existing.PasswordHash)
}

func TestMemberService_UpdateProfile_ConfirmMismatch(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	existing := testMember(t, "p1")
	originalHash := existing.PasswordHash

	fx.memberRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)

	_, err := fx.service.UpdateProfile(ctx, existing.ID, &usecase.UpdateProfileInput{
		CurrentPassword: "p1",
		Name:            existing.Name,
		Email:           existing.Email,
		Address:         existing.Address,
		NewPassword:     "abc",
		ConfirmPassword: "xyz",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordConfirmMismatch))
	// No hash was recomputed or stored.
	assert.Equal(t, originalHash, existing.PasswordHash)
}

func TestMemberService_UpdateProfile_EmailTaken(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	existing := testMember(t, "p1")
	other := testMember(t, "p2")
	other.Email = "b@x.com"

	fx.memberRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	fx.memberRepo.On("FindByEmail", ctx, "b@x.com").Return(other, nil)

	_, err := fx.service.UpdateProfile(ctx, existing.ID, &usecase.UpdateProfileInput{
		CurrentPassword: "p1",
		Name:            existing.Name,
		Email:           "b@x.com",
		Address:         existing.Address,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberAlreadyExists))
	assert.Equal(t, "a@x.com", existing.Email)
}

func TestMemberService_UpdateProfile_UnknownID(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	unknown := uuid.New()

	fx.memberRepo.On("FindByID", ctx, unknown).Return(nil, repository.ErrMemberNotFound)

	_, err := fx.service.UpdateProfile(ctx, unknown, &usecase.UpdateProfileInput{
		CurrentPassword: "p1",
		Name:            "B",
		Email:           "b@x.com",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_AdminUpdate_RequiresAdminRole(t *testing.T) {
	fx := createTestMemberService(t)

	_, err := fx.service.AdminUpdate(context.Background(), selfActor(uuid.New()), uuid.New(), &usecase.AdminPatch{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestMemberService_AdminUpdate_UnknownID(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	unknown := uuid.New()

	fx.memberRepo.On("FindByID", ctx, unknown).Return(nil, repository.ErrMemberNotFound)

	_, err := fx.service.AdminUpdate(ctx, adminActor(), unknown, &usecase.AdminPatch{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_AdminUpdate_EmailTaken(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	existing := testMember(t, "p1")
	other := testMember(t, "p2")
	other.Email = "b@x.com"
	takenEmail := "b@x.com"

	fx.memberRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	fx.memberRepo.On("FindByEmail", ctx, takenEmail).Return(other, nil)

	_, err := fx.service.AdminUpdate(ctx, adminActor(), existing.ID, &usecase.AdminPatch{Email: &takenEmail})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberAlreadyExists))
}

func TestMemberService_Delete_ForbiddenForOtherMember(t *testing.T) {
	fx := createTestMemberService(t)

	err := fx.service.Delete(context.Background(), selfActor(uuid.New()), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestMemberService_Delete_UnknownID(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	unknown := uuid.New()

	fx.memberRepo.On("Delete", ctx, unknown).Return(repository.ErrMemberNotFound)

	err := fx.service.Delete(ctx, adminActor(), unknown)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_Delete_SecondCallFails(t *testing.T) {
	fx := createTestMemberService(t)

	ctx := context.Background()
	memberID := uuid.New()

	// The record exists for the first delete only.
	fx.memberRepo.On("Delete", ctx, memberID).Return(nil).Once()
	fx.memberRepo.On("Delete", ctx, memberID).Return(repository.ErrMemberNotFound).Once()

	require.NoError(t, fx.service.Delete(ctx, adminActor(), memberID))

	err := fx.service.Delete(ctx, adminActor(), memberID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMemberNotFound))
}

func TestMemberService_SearchAdminPage_RequiresAdminRole(t *testing.T) {
	fx := createTestMemberService(t)

	_, err := fx.service.SearchAdminPage(context.Background(), selfActor(uuid.New()), repository.SearchFilter{}, repository.PageRequest{Size: 10})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
