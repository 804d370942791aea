package app

import (
	"context"

	"moviebase/pkg/domain"
)

// EnsureAdmin creates the bootstrap admin account when no admin exists yet.
// Reports whether an account was created.
func (a *App) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	count, err := a.store.CountAccounts(domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if _, err := a.AddAccount(ctx, domain.RoleAdmin, AccountInput{
		Name:     name,
		Email:    email,
		Password: password,
	}); err != nil {
		return false, err
	}
	return true, nil
}
