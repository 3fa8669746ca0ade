package domain

import "context"

// AccountService manages the caller's own user record. Deleting an account
// removes every patient it owns together with their assignments.
type AccountService interface {
	Delete(ctx context.Context, userID int64) error
}
