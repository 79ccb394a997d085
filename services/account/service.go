package account

import (
	"context"
	"errors"
	"sync"

	"dairyfront/models"
	"dairyfront/upstream"
	"dairyfront/utils"

	"go.uber.org/zap"
)

// Profile is the aggregated profile screen: subscriptions and wallet, each
// with its own error so a partial failure still renders the rest.
type Profile struct {
	User          *models.User          `json:"user"`
	Subscriptions []models.Subscription `json:"subscriptions"`
	Wallet        *models.Wallet        `json:"wallet,omitempty"`
	SubsError     string                `json:"subscriptionsError,omitempty"`
	WalletError   string                `json:"walletError,omitempty"`
}

// AccountService backs the profile/wallet screen.
type AccountService interface {
	GetProfile(ctx context.Context, token string, user *models.User) (*Profile, error)
	AddMoney(ctx context.Context, token string, amount float64) (*models.Wallet, error)
	PauseSubscription(ctx context.Context, token, id string) error
	CancelSubscription(ctx context.Context, token, id string) error
}

type DefaultAccountService struct {
	Backend *upstream.Client
}

// GetProfile fetches subscriptions and wallet concurrently; the two reads
// are independent and order does not matter.
func (s *DefaultAccountService) GetProfile(ctx context.Context, token string, user *models.User) (*Profile, error) {
	profile := &Profile{User: user}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		subs, err := s.Backend.ListSubscriptions(ctx, token)
		if err != nil {
			utils.GetLogger().Warn("Failed to fetch subscriptions", zap.Error(err))
			profile.SubsError = "Could not load your subscriptions"
			return
		}
		profile.Subscriptions = subs
	}()
	go func() {
		defer wg.Done()
		wallet, err := s.Backend.GetWallet(ctx, token)
		if err != nil {
			utils.GetLogger().Warn("Failed to fetch wallet", zap.Error(err))
			profile.WalletError = "Could not load your wallet"
			return
		}
		profile.Wallet = wallet
	}()
	wg.Wait()

	return profile, nil
}

func (s *DefaultAccountService) AddMoney(ctx context.Context, token string, amount float64) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	return s.Backend.AddMoney(ctx, token, amount)
}

func (s *DefaultAccountService) PauseSubscription(ctx context.Context, token, id string) error {
	return s.Backend.PauseSubscription(ctx, token, id)
}

func (s *DefaultAccountService) CancelSubscription(ctx context.Context, token, id string) error {
	return s.Backend.CancelSubscription(ctx, token, id)
}
