package core

import (
	"context"
	"time"

	"github.com/drone/go-scm/scm"
)

// Token represents the git oauth token used to post commit statuses
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
}

// GitTokenHandler handles git token related things
type GitTokenHandler interface {
	// GetToken returns the token stored at tokenPath, or the configured token of driver if tokenPath is empty.
	GetToken(ctx context.Context, driver SCMDriver, tokenPath string) (*Token, error)
}

// SetRequestContext sets the token values in the request context
func (t *Token) SetRequestContext(ctx context.Context) context.Context {
	token := &scm.Token{
		Token:   t.AccessToken,
		Refresh: t.RefreshToken,
		Expires: t.Expiry,
	}

	return context.WithValue(ctx, scm.TokenKey{}, token)
}
