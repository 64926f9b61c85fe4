package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/config"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mapper"
	"github.com/labaid/labaid-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService signs users in and manages their own passwords
type AuthService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	labRepo      *repository.LabRepository
	tokens       *auth.TokenIssuer
	auditService *AuditLogService
	bcryptCost   int
	logger       *zap.Logger
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	labRepo *repository.LabRepository,
	tokens *auth.TokenIssuer,
	auditService *AuditLogService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		db:           db,
		userRepo:     userRepo,
		labRepo:      labRepo,
		tokens:       tokens,
		auditService: auditService,
		bcryptCost:   cfg.BcryptCost,
		logger:       logger,
	}
}

// Login verifies credentials and issues an access token. Unknown emails,
// wrong passwords and inactive accounts all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) || !user.IsActive {
		s.logger.Info("login rejected", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if user.Lab != nil && !user.Lab.IsActive {
		return nil, ErrLabSuspended
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).UpdateLastLogin(ctx, user.ID, now); err != nil {
			return err
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      user.LabID,
			Action:     domain.ActionUserLogin,
			EntityType: domain.EntityUser,
			EntityID:   uuidPtr(user.ID),
			UserID:     uuidPtr(user.ID),
			UserName:   user.FullName,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now

	return &domain.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		User:        mapper.ToUserDTO(user),
	}, nil
}

// Logout records the sign-out; tokens are stateless and expire on their own
func (s *AuthService) Logout(ctx context.Context) error {
	userCtx, err := currentUser(ctx)
	if err != nil {
		return err
	}
	return s.auditService.Record(ctx, nil, AuditEntry{
		LabID:      userCtx.LabID,
		Action:     domain.ActionUserLogout,
		EntityType: domain.EntityUser,
		EntityID:   uuidPtr(userCtx.UserID),
	})
}

// Me returns the signed-in user and the lab the request operates on
func (s *AuthService) Me(ctx context.Context) (*domain.MeDTO, error) {
	userCtx, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	me := &domain.MeDTO{}
	if userCtx.IsSystem {
		me.User = domain.UserDTO{
			ID:       userCtx.UserID,
			Email:    userCtx.Email,
			FullName: userCtx.FullName,
			Role:     userCtx.Role,
			IsActive: true,
		}
	} else {
		user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
		if err != nil {
			return nil, notFound(err, ErrUserNotFound)
		}
		me.User = mapper.ToUserDTO(user)
	}

	if labID := auth.GetEffectiveLabID(ctx); labID != nil {
		lab, err := s.labRepo.GetByID(ctx, *labID)
		if err != nil {
			return nil, notFound(err, ErrLabNotFound)
		}
		dto := mapper.ToLabDTO(lab)
		me.Lab = &dto
	}
	return me, nil
}

// ChangePassword replaces the caller's password and clears the forced-change flag
func (s *AuthService) ChangePassword(ctx context.Context, req *domain.ChangePasswordRequest) error {
	userCtx, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if userCtx.IsSystem {
		return ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return ErrPasswordUnchanged
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.MustChangePassword = false

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return s.auditService.Record(ctx, tx, AuditEntry{
			LabID:      user.LabID,
			Action:     domain.ActionUserChangePassword,
			EntityType: domain.EntityUser,
			EntityID:   uuidPtr(user.ID),
		})
	})
}
