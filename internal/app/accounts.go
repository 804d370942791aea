package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"moviebase/internal/util"
	"moviebase/pkg/auth"
	"moviebase/pkg/domain"
	"moviebase/pkg/store"
)

// AccountInput carries account fields from create and update requests.
type AccountInput struct {
	Name     string
	Email    string
	Password string
}

func accountNotFound(role domain.Role) error {
	if role == domain.RoleAdmin {
		return ErrAdminNotFound
	}
	return ErrUserNotFound
}

func validateAccountInput(in AccountInput, requirePassword bool) error {
	var problems []string
	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		problems = append(problems, "email is required")
	} else if !strings.Contains(email, "@") {
		problems = append(problems, "email is not valid")
	}
	if requirePassword && in.Password == "" {
		problems = append(problems, "password is required")
	}
	if in.Password != "" && len(in.Password) < 6 {
		problems = append(problems, "password must be at least 6 characters")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Login verifies credentials and rotates the account's session token. Any
// previously issued token stops validating.
func (a *App) Login(ctx context.Context, role domain.Role, email, password string) (domain.Account, string, error) {
	acct, found, err := a.store.GetAccountByEmail(role, strings.TrimSpace(email))
	if err != nil {
		return domain.Account{}, "", err
	}
	if !found {
		return domain.Account{}, "", ErrEmailNotFound
	}
	if !auth.CheckPassword(acct.PasswordHash, password) {
		return domain.Account{}, "", ErrWrongCredentials
	}
	signed, err := a.tokens.Issue(acct.ID, role)
	if err != nil {
		return domain.Account{}, "", err
	}
	if err := a.store.SetSessionToken(role, acct.ID, signed); err != nil {
		return domain.Account{}, "", err
	}
	acct.SessionToken = signed
	return acct, signed, nil
}

// AddAccount registers a new account with a hashed password.
func (a *App) AddAccount(ctx context.Context, role domain.Role, in AccountInput) (domain.Account, error) {
	if err := validateAccountInput(in, true); err != nil {
		return domain.Account{}, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.Account{}, err
	}
	now := time.Now().UTC()
	acct := domain.Account{
		ID:           util.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.SaveAccount(acct); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Account{}, ErrEmailExists
		}
		return domain.Account{}, err
	}
	return acct, nil
}

// UpdateAccount changes name and email, and the password when one is given.
func (a *App) UpdateAccount(ctx context.Context, role domain.Role, id string, in AccountInput) (domain.Account, error) {
	if !util.IsValidID(id) {
		return domain.Account{}, ErrInvalidUserID
	}
	if err := validateAccountInput(in, false); err != nil {
		return domain.Account{}, err
	}
	acct, found, err := a.store.GetAccountByID(role, id)
	if err != nil {
		return domain.Account{}, err
	}
	if !found {
		return domain.Account{}, accountNotFound(role)
	}
	acct.Name = strings.TrimSpace(in.Name)
	acct.Email = strings.TrimSpace(in.Email)
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return domain.Account{}, err
		}
		acct.PasswordHash = hash
	}
	acct.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveAccount(acct); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Account{}, ErrEmailExists
		}
		return domain.Account{}, err
	}
	return acct, nil
}

// DeleteAccount removes an account. An account can never delete itself;
// that guard keeps the last admin from locking everyone out.
func (a *App) DeleteAccount(ctx context.Context, role domain.Role, actorID, id string) error {
	if !util.IsValidID(id) {
		return ErrInvalidUserID
	}
	if actorID == id {
		return ErrSelfDelete
	}
	_, found, err := a.store.GetAccountByID(role, id)
	if err != nil {
		return err
	}
	if !found {
		return accountNotFound(role)
	}
	return a.store.DeleteAccount(role, id)
}

// Account fetches a single account by ID.
func (a *App) Account(ctx context.Context, role domain.Role, id string) (domain.Account, error) {
	if !util.IsValidID(id) {
		return domain.Account{}, ErrInvalidUserID
	}
	acct, found, err := a.store.GetAccountByID(role, id)
	if err != nil {
		return domain.Account{}, err
	}
	if !found {
		return domain.Account{}, accountNotFound(role)
	}
	return acct, nil
}

// Accounts lists every account of a role.
func (a *App) Accounts(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	return a.store.ListAccounts(role)
}

// AccountsPage returns one page of accounts, newest first, plus the total
// count for computing page numbers.
func (a *App) AccountsPage(ctx context.Context, role domain.Role, page, limit int) ([]domain.Account, int, error) {
	page, limit = normalizePage(page, limit)
	total, err := a.store.CountAccounts(role)
	if err != nil {
		return nil, 0, err
	}
	accounts, err := a.store.ListAccountsPage(role, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
