package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"fraudquest-bot/internal/model"
	"fraudquest-bot/internal/repository"
)

// AccountService handles account lifecycle: first-interaction creation,
// profile refresh, language and subscription preferences.
type AccountService struct {
	userRepo *repository.UserRepository
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(userRepo *repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// EnsureUser loads the account for an interaction, creating it on first
// contact and keeping the Telegram display fields current.
func (s *AccountService) EnsureUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, bool, error) {
	user, created, err := s.userRepo.GetOrCreate(ctx, telegramID, username, firstName)
	if err != nil {
		return nil, false, err
	}
	if created {
		log.Info().Int64("user_id", telegramID).Str("username", username).Msg("New user registered")
		return user, true, nil
	}

	if user.Username != username || user.FirstName != firstName {
		if err := s.userRepo.UpdateProfile(ctx, telegramID, username, firstName); err != nil {
			log.Warn().Err(err).Int64("user_id", telegramID).Msg("Failed to refresh profile")
		} else {
			user.Username = username
			user.FirstName = firstName
		}
	}
	return user, false, nil
}

// GetUser loads an account by id.
func (s *AccountService) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, telegramID)
}

// SetSubscribed toggles the daily tip subscription.
func (s *AccountService) SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) error {
	return s.userRepo.SetSubscribed(ctx, telegramID, subscribed)
}

// Subscribers lists the Telegram IDs of all tip subscribers.
func (s *AccountService) Subscribers(ctx context.Context) ([]int64, error) {
	return s.userRepo.ListSubscribed(ctx)
}
