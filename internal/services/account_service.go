package services

import "context"

// AccountService tears down everything a user owns.
type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) error
}
