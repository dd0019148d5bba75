// Package services contains the application services of the console.
// This file defines the authentication service: credential validation,
// login against the upstream and the session-scoped token bookkeeping.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userconsole/internal/common"
	"github.com/dmitrijs2005/userconsole/internal/models"
	"github.com/dmitrijs2005/userconsole/internal/remote"
	"github.com/dmitrijs2005/userconsole/internal/session"
	"github.com/go-playground/validator/v10"
)

// TokenTTL is how long a login token is honoured.
const TokenTTL = 24 * time.Hour

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login: validate credentials, authenticate upstream and persist the token.
//   - Logout: drop the token and mark the session as logged out.
//   - IsAuthenticated: token present, unexpired and no logout marker.
//   - CurrentUser: email of the logged in user, empty when unknown.
//
// Authentication is purely client side. The token is never sent anywhere.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (string, error)
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type authService struct {
	client   remote.Client
	store    session.Store
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthService(client remote.Client, store session.Store) AuthService {
	return newAuthService(client, store, time.Now)
}

func newAuthService(client remote.Client, store session.Store, now func() time.Time) *authService {
	return &authService{client: client, store: store, validate: validator.New(), now: now}
}

// Validate checks the credential format before anything is sent upstream.
// It returns common.ErrInvalidEmail or common.ErrPasswordTooWeak.
func (a *authService) Validate(email, password string) error {
	err := a.validate.Struct(credentials{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	// email is checked first, like the login form
	for _, fe := range verrs {
		if fe.Field() == "Email" {
			return common.ErrInvalidEmail
		}
	}
	return common.ErrPasswordTooWeak
}

// Login persists the token together with its expiry and clears the logout
// marker in one batch.
func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := a.Validate(email, password); err != nil {
		return err
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	raw, err := json.Marshal(models.AuthData{
		Token:     token,
		ExpiresAt: a.now().Add(TokenTTL).UnixMilli(),
		Email:     email,
	})
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := a.store.Apply(ctx,
		session.Put(common.AuthDataKey, raw),
		session.Remove(common.LoggedOutKey),
	); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Apply(ctx,
		session.Remove(common.AuthDataKey),
		session.Put(common.LoggedOutKey, []byte("true")),
	)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	loggedOut, err := a.store.Get(ctx, common.LoggedOutKey)
	if err != nil {
		return false, err
	}
	if string(loggedOut) == "true" {
		return false, nil
	}

	auth, err := a.authData(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrTokenExpired) {
			return false, nil
		}
		return false, err
	}
	return auth.Token != "", nil
}

func (a *authService) CurrentUser(ctx context.Context) (string, error) {
	auth, err := a.authData(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrTokenExpired) {
			return "", nil
		}
		return "", err
	}
	return auth.Email, nil
}

// authData reads the stored token. An expired token is removed and the
// session is marked as logged out.
func (a *authService) authData(ctx context.Context) (models.AuthData, error) {
	raw, err := a.store.Get(ctx, common.AuthDataKey)
	if err != nil {
		return models.AuthData{}, err
	}
	if raw == nil {
		return models.AuthData{}, common.ErrUnauthorized
	}

	var auth models.AuthData
	if err := json.Unmarshal(raw, &auth); err != nil {
		return models.AuthData{}, fmt.Errorf("%w: unreadable token: %w", common.ErrUnauthorized, err)
	}

	if a.now().UnixMilli() > auth.ExpiresAt {
		if err := a.Logout(ctx); err != nil {
			return models.AuthData{}, err
		}
		return models.AuthData{}, common.ErrTokenExpired
	}
	return auth, nil
}

// LoginMessage turns a Login error into the text shown to the user.
// password is the one that was submitted.
func LoginMessage(err error, password string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrInvalidEmail), errors.Is(err, common.ErrUserNotFound):
		return "Invalid email"
	case errors.Is(err, common.ErrPasswordTooWeak):
		return "Password must be at least 6 characters"
	case errors.Is(err, common.ErrInvalidPassword), password != common.DemoPassword:
		return "Invalid password - hint: use '" + common.DemoPassword + "'"
	default:
		return "Invalid login credentials"
	}
}
