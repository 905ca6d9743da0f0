package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/shoestore/backend/internal/domain/identity"
	"github.com/shoestore/backend/internal/domain/shared"
)

// EnsureCustomerAccount resolves an email to a user account, creating a
// customer account (default password, role "user") when none exists.
// Idempotent: repeated calls for the same email return the same ID. The
// sales invoice engine invokes this inside its transaction via the
// repository it passes in.
func EnsureCustomerAccount(ctx context.Context, users identity.UserRepository, email, name string) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "Email khách hàng không được để trống")
	}

	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}

	account, err := identity.NewCustomerAccount(email, name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := users.Save(ctx, account); err != nil {
		return uuid.Nil, err
	}
	return account.ID, nil
}
