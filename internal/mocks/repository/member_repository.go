// Package repository contains hand-written test doubles for the domain
// repository interfaces.
package repository

import (
	"context"
	"testing"

	"roster/internal/domain/entity"
	"roster/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a testify mock of repository.MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

// NewMockMemberRepository creates the mock and registers an expectations
// check for test cleanup.
func NewMockMemberRepository(t *testing.T) *MockMemberRepository {
	t.Helper()

	m := &MockMemberRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	args := m.Called(ctx, id)

	member, _ := args.Get(0).(*entity.Member)

	return member, args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	args := m.Called(ctx, email)

	member, _ := args.Get(0).(*entity.Member)

	return member, args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, member *entity.Member) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *entity.Member) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockMemberRepository) QueryPage(ctx context.Context, filter repository.SearchFilter, page repository.PageRequest) (*repository.Page, error) {
	args := m.Called(ctx, filter, page)

	result, _ := args.Get(0).(*repository.Page)

	return result, args.Error(1)
}
