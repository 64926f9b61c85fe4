package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labaid/labaid-api/internal/auth"
	"github.com/labaid/labaid-api/internal/database"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a super admin account",
	Long: `Create a super admin account. Without --password a temporary password is
generated and printed; it must be changed at first login.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		email := strings.ToLower(strings.TrimSpace(adminEmail))
		name := strings.TrimSpace(adminName)
		if email == "" || name == "" {
			return errors.New("--email and --name are required")
		}

		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := database.NewDatabase(&cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		users := repository.NewUserRepository(db)
		exists, err := users.ExistsByEmail(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return fmt.Errorf("a user with email %s already exists", email)
		}

		password := adminPassword
		generated := password == ""
		if generated {
			if password, err = auth.GenerateTempPassword(cfg.Auth.TempPasswordLength); err != nil {
				return err
			}
		} else if len(password) < 8 {
			return errors.New("password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}

		user := &domain.User{
			Email:              email,
			FullName:           name,
			PasswordHash:       hash,
			Role:               domain.RoleSuperAdmin,
			IsActive:           true,
			MustChangePassword: generated,
		}
		if err := users.Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		log.Info("super admin created", zap.String("user_id", user.ID.String()))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created super admin %s (%s)\n", email, user.ID)
		if generated {
			fmt.Fprintf(out, "Temporary password: %s\n", password)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Full name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password (generated when empty)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(createAdminCmd)
}
