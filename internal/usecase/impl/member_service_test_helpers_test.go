package impl

import (
	"io"
	"log/slog"
	"testing"

	"roster/internal/domain/entity"
	"roster/internal/infra/auth"
	mockRepo "roster/internal/mocks/repository"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// memberServiceFixtures holds all test dependencies for member service tests.
type memberServiceFixtures struct {
	service    usecase.MemberUsecase
	memberRepo *mockRepo.MockMemberRepository
}

// createTestMemberService wires the service against a mocked repository and
// the real bcrypt hasher at minimum cost.
func createTestMemberService(t *testing.T) memberServiceFixtures {
	t.Helper()

	memberRepo := mockRepo.NewMockMemberRepository(t)
	txManager := mockRepo.NewStubTransactionManager(memberRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewMemberService(MemberServiceParams{
		TxManager: txManager,
		Hasher:    auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:    logger,
	})

	return memberServiceFixtures{
		service:    service,
		memberRepo: memberRepo,
	}
}

// testMember builds a member with a real bcrypt hash of the given password.
func testMember(t *testing.T, password string) *entity.Member {
	t.Helper()

	hash, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost).Hash(password)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	return &entity.Member{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: hash,
		Name:         "A",
		Address:      "1 Test Street",
		Role:         entity.RoleUser,
	}
}

func adminActor() usecase.Actor {
	return usecase.Actor{MemberID: uuid.New(), Role: entity.RoleAdmin}
}

func selfActor(id uuid.UUID) usecase.Actor {
	return usecase.Actor{MemberID: id, Role: entity.RoleUser}
}
