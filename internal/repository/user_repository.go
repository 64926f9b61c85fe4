package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"gorm.io/gorm"
)

// UserFilter narrows user listings
type UserFilter struct {
	Search          string
	Role            *domain.UserRole
	IncludeInactive bool
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to a transaction
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID loads a user with their lab
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Lab").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail matches emails case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Lab").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns users of the request's lab
func (r *UserRepository) List(ctx context.Context, filter *UserFilter) ([]domain.User, error) {
	var users []domain.User
	query := ApplyLabFilter(ctx, r.db.WithContext(ctx).Preload("Lab"))

	if filter != nil {
		if filter.Search != "" {
			p := likePattern(filter.Search)
			query = query.Where("(LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?)", p, p)
		}
		if filter.Role != nil {
			query = query.Where("role = ?", *filter.Role)
		}
		if !filter.IncludeInactive {
			query = query.Where("is_active = ?", true)
		}
	}

	err := query.Order("full_name ASC").Find(&users).Error
	return users, err
}

// ListByLabAndRoles finds active users of a lab holding any of the roles
func (r *UserRepository) ListByLabAndRoles(ctx context.Context, labID uuid.UUID, roles []domain.UserRole) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("lab_id = ? AND is_active = ? AND role IN ?", labID, true, roles).
		Order("email ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Omit("Lab").Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// ExistsByEmail reports whether any user already has the email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}
