// Package app provides authentication initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/internal/repository"
)

// bootstrapStaffAccount creates the initial editorial staff account if the
// bootstrap credentials are configured and no account with that email exists.
// There is no registration endpoint, so this is the only in-process way an
// account comes into being; everything else is seeded by the ops scripts.
func bootstrapStaffAccount(userRepo repository.UserRepositoryInterface, cfg config.AuthConfig) error {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, _ := userRepo.FindByEmail(ctx, cfg.BootstrapEmail)
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:    cfg.BootstrapEmail,
		Username: cfg.BootstrapEmail,
		Password: string(hash),
		Name:     cfg.BootstrapName,
		Roles:    []string{"editor"},
		Active:   true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Info().Str("email", cfg.BootstrapEmail).Msg("Created bootstrap staff account")
	return nil
}
