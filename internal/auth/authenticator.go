// Package auth provides user authentication: bcrypt password checks and
// JWT session tokens.
package auth

import (
	"context"

	"github.com/mmynk/settleup/internal/models"
)

// Authenticator registers and verifies ledger owners. The service layer
// depends only on this interface.
type Authenticator interface {
	// Register creates an account. Emails are unique case-insensitively.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account matching email and credential, or
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials too weak to register with.
	ValidateCredential(credential string) error
}
