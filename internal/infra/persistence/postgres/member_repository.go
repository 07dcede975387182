// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// memberRepository implements the domain.MemberRepository interface using GORM.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository is the constructor for memberRepository.
// It returns the repository as a domain.MemberRepository interface, adhering to dependency inversion.
func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

// FindByID retrieves a single member by their unique ID.
func (repo *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	var memberM model.MemberModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&memberM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}
		// Otherwise, return the original database error.
		return nil, errors.Wrap(err, "failed to find member by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toMemberDomain(&memberM), nil
}

// FindByEmail retrieves a single member by their exact email address.
func (repo *memberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var memberM model.MemberModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&memberM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find member by email")
	}

	return toMemberDomain(&memberM), nil
}

// Create persists a new member entity to the database.
func (repo *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	// Map the pure domain entity to a GORM persistence model.
	memberM := fromMemberDomain(member)

	if err := repo.db.WithContext(ctx).Create(memberM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrMemberAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMemberCreationFailed.WrapMessage("missing required member information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create member")
	}

	// Update the member entity with the generated ID and timestamps
	member.ID = memberM.ID
	member.CreatedAt = memberM.CreatedAt
	member.UpdatedAt = memberM.UpdatedAt

	return nil
}

// Update modifies an existing member entity in the database.
func (repo *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	memberM := fromMemberDomain(member)

	if err := repo.db.WithContext(ctx).Save(memberM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrMemberAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMemberUpdateFailed.WrapMessage("missing required member information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update member")
	}

	member.UpdatedAt = memberM.UpdatedAt

	return nil
}

// Delete removes a member record permanently. The model carries no
// DeletedAt column, so this is a hard delete.
func (repo *memberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MemberModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete member")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMemberNotFound
	}

	return nil
}

// QueryPage returns one page of members matching the filter, together with
// the total match count. Ordering is id ascending so repeated queries
// against an unchanged store are deterministic.
func (repo *memberRepository) QueryPage(ctx context.Context, filter repository.SearchFilter, page repository.PageRequest) (*repository.Page, error) {
	query := repo.db.WithContext(ctx).Model(&model.MemberModel{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count members")
	}

	var memberMs []model.MemberModel
	err := query.
		Order("id ASC").
		Offset(page.Page * page.Size).
		Limit(page.Size).
		Find(&memberMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query member page")
	}

	items := make([]*entity.Member, 0, len(memberMs))
	for i := range memberMs {
		items = append(items, toMemberDomain(&memberMs[i]))
	}

	return &repository.Page{
		Items:      items,
		TotalCount: total,
		Page:       page.Page,
		Size:       page.Size,
	}, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toMemberDomain converts a GORM MemberModel to a domain Member entity.
func toMemberDomain(data *model.MemberModel) *entity.Member {
	if data == nil {
		return nil
	}

	return &entity.Member{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Address:      data.Address,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromMemberDomain converts a domain Member entity to a GORM MemberModel for persistence.
func fromMemberDomain(data *entity.Member) *model.MemberModel {
	if data == nil {
		return nil
	}

	// CreatedAt must survive the round trip: Update persists via Save,
	// which writes every column. A zero value here would overwrite the
	// original creation timestamp.
	return &model.MemberModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Address:      data.Address,
		Role:         data.Role.String(),
		CreatedAt:    data.CreatedAt,
	}
}
