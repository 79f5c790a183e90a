package jwt

import (
	"time"

	"github.com/LambdaTest/herald/pkg/errors"
	"github.com/golang-jwt/jwt/v4"
	jsoniter "github.com/json-iterator/go"
)

// Claims represents the claims of an internal jwt token.
type Claims struct {
	jwt.MapClaims
}

// NewClaims initializes empty claims.
func NewClaims() *Claims {
	return &Claims{MapClaims: jwt.MapClaims{}}
}

// SetExpiry sets expiry in unix epoch secs
func (c *Claims) SetExpiry(timeUnix int64) {
	c.MapClaims["exp"] = timeUnix
}

// SetIssuedAt sets the issue time in unix epoch secs
func (c *Claims) SetIssuedAt(timeUnix int64) {
	c.MapClaims["iat"] = timeUnix
}

// SetJTI sets the unique JWT ID
func (c *Claims) SetJTI(jti string) {
	c.MapClaims["jti"] = jti
}

// SetSubject sets the caller the token is issued to.
func (c *Claims) SetSubject(subject string) error {
	if subject == "" {
		return errors.ErrMissingSubject
	}
	c.MapClaims["sub"] = subject
	return nil
}

// Valid checks if the claims of the token are valid.
func (c *Claims) Valid() error {
	now := time.Now().Unix()

	if !c.MapClaims.VerifyExpiresAt(now, true) {
		return errors.ErrExpiredToken
	}
	if !c.MapClaims.VerifyIssuedAt(now, true) {
		return errors.ErrExpiredToken
	}

	if _, ok := c.MapClaims["jti"].(string); !ok {
		return errors.ErrMissingJTI
	}

	if sub, ok := c.MapClaims["sub"].(string); !ok || sub == "" {
		return errors.ErrMissingSubject
	}
	return nil
}

// MarshalJSON marshals the MapClaims struct
func (c *Claims) MarshalJSON() ([]byte, error) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return json.Marshal(c.MapClaims)
}
