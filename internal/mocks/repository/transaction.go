package repository

import (
	"context"

	"roster/internal/domain/repository"
)

// StubRepositoryFactory hands out a fixed member repository, standing in
// for a transaction-bound factory.
type StubRepositoryFactory struct {
	Members repository.MemberRepository
}

func (f *StubRepositoryFactory) MemberRepo() repository.MemberRepository {
	return f.Members
}

// StubTransactionManager runs the callback directly against the stub
// factory. The callback's error is returned unchanged, mirroring a
// rolled-back transaction surfacing its business error.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

// NewStubTransactionManager wires a transaction manager around a single
// member repository double.
func NewStubTransactionManager(members repository.MemberRepository) *StubTransactionManager {
	return &StubTransactionManager{Factory: &StubRepositoryFactory{Members: members}}
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
