package app

import (
	"context"

	"moviebase/pkg/domain"
)

// ValidateSession resolves a presented bearer token to an account.
//
// An empty or undecodable token yields an anonymous session (zero account,
// false) without error; role checks downstream reject it if the route needs
// an identity. A token that decodes but no longer matches the account's
// stored session token has been revoked by a newer login and fails with
// ErrTokenExpired.
func (a *App) ValidateSession(ctx context.Context, raw string) (domain.Account, bool, error) {
	if raw == "" {
		return domain.Account{}, false, nil
	}
	claims, err := a.tokens.Decode(raw)
	if err != nil {
		return domain.Account{}, false, nil
	}
	acct, found, err := a.store.GetAccountByToken(claims.Role, raw)
	if err != nil {
		return domain.Account{}, false, err
	}
	if !found || acct.ID != claims.AccountID {
		return domain.Account{}, false, ErrTokenExpired
	}
	return acct, true, nil
}
