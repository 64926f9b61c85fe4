package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService lets lab admins manage accounts
type UserService struct {
	db                 *gorm.DB
	userRepo           *repository.UserRepository
	labRepo            *repository.LabRepository
	auditService       *AuditLogService
	bcryptCost         int
	tempPasswordLength int
	logger             *zap.Logger
}

func NewUserService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	labRepo *repository.LabRepository,
	auditService *AuditLogService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		db:                 db,
		userRepo:           userRepo,
		labRepo:            labRepo,
		auditService:       auditService,
		bcryptCost:         cfg.BcryptCost,
		tempPasswordLength: cfg.TempPasswordLength,
		logger:             logger,
	}
}

// List returns the users of the active lab; super admins without a lab see everyone
func (s *UserService) List(ctx context.Context, filter *repository.UserFilter) ([]domain.UserDTO, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = mapper.ToUserDTO(&users[i])
	}
	return dtos, nil
}

// Create adds an account with a generated temporary password that must be changed on first sign-in
func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.UserWithPasswordDTO, error) {
	actor, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	labID, err := s.resolveNewUserLab(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	tempPassword, err := auth.GenerateTempPassword(s.tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:              email,
		FullName:           strings.TrimSpace(req.FullName),
		PasswordHash:       hash,
		Role:               req.Role,
		LabID:              labID,
		IsActive:           true,
		MustChangePassword: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      user.LabID,
			Action:     domain.ActionUserCreate,
			EntityType: domain.EntityUser,
			EntityID:   uuidPtr(user.ID),
			After:      mapper.ToUserDTO(user),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &domain.UserWithPasswordDTO{
		User:              mapper.ToUserDTO(user),
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *UserService) resolveNewUserLab(ctx context.Context, actor *auth.UserContext, req *domain.CreateUserRequest) (*uuid.UUID, error) {
	if req.Role == domain.RoleSuperAdmin {
		if !actor.IsSuperAdmin() {
			return nil, ErrPermissionDenied
		}
		return nil, nil
	}

	var labID *uuid.UUID
	if actor.IsSuperAdmin() {
		labID = req.LabID
		if labID == nil {
			labID = auth.GetEffectiveLabID(ctx)
		}
		if labID == nil {
			return nil, ErrLabRequired
		}
	} else {
		if actor.LabID == nil {
			return nil, ErrLabRequired
		}
		if req.LabID != nil && *req.LabID != *actor.LabID {
			return nil, ErrPermissionDenied
		}
		labID = actor.LabID
	}

	if _, err := s.labRepo.GetByID(ctx, *labID); err != nil {
		return nil, notFound(err, ErrLabNotFound)
	}
	return labID, nil
}

// Update changes name, role or active flag
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.UserDTO, error) {
	actor, user, err := s.loadManagedUser(ctx, id)
	if err != nil {
		return nil, err
	}
	before := mapper.ToUserDTO(user)
	auditLab := user.LabID

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		if *req.Role == domain.RoleSuperAdmin && !actor.IsSuperAdmin() {
			return nil, ErrPermissionDenied
		}
		if *req.Role != domain.RoleSuperAdmin && user.LabID == nil {
			// A super admin has no lab to fall back to
			return nil, ErrLabRequired
		}
		user.Role = *req.Role
		if user.Role == domain.RoleSuperAdmin {
			// super admins span every lab
			user.LabID = nil
			user.Lab = nil
		}
	}
	if req.IsActive != nil {
		if !*req.IsActive && user.ID == actor.UserID {
			return nil, ErrCannotDeactivateSelf
		}
		user.IsActive = *req.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      auditLab,
			Action:     domain.ActionUserUpdate,
			EntityType: domain.EntityUser,
			EntityID:   uuidPtr(user.ID),
			Before:     before,
			After:      mapper.ToUserDTO(user),
		})
	})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// ResetPassword issues a new temporary password
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID) (*domain.UserWithPasswordDTO, error) {
	_, user, err := s.loadManagedUser(ctx, id)
	if err != nil {
		return nil, err
	}

	tempPassword, err := auth.GenerateTempPassword(s.tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = true

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Update(ctx, user); err != nil {
			return fmt.Errorf("failed to reset password: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      user.LabID,
			Action:     domain.ActionUserResetPassword,
			EntityType: domain.EntityUser,
			EntityID:   uuidPtr(user.ID),
		})
	})
	if err != nil {
		return nil, err
	}

	return &domain.UserWithPasswordDTO{
		User:              mapper.ToUserDTO(user),
		TemporaryPassword: tempPassword,
	}, nil
}

// loadManagedUser loads a user the caller may administer. Users outside the
// caller's lab are reported as not found.
func (s *UserService) loadManagedUser(ctx context.Context, id uuid.UUID) (*auth.UserContext, *domain.User, error) {
	actor, err := currentUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, ErrUserNotFound)
	}
	if !actor.IsSuperAdmin() {
		if user.LabID == nil || !actor.CanAccessLab(*user.LabID) {
			return nil, nil, ErrUserNotFound
		}
	}
	return actor, user, nil
}
