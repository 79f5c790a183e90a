package core

import (
	"github.com/gin-gonic/gin"
)

// Session authorizes the CI engine calling the internal API.
type Session interface {
	// CreateTokenInternal creates an internal JWT token for subject.
	CreateTokenInternal(subject string) (string, error)
	// AuthorizeInternal parses and validates the internal JWT Token
	AuthorizeInternal(c *gin.Context) (*ClientData, error)
}

// ClientData represents the data which is stored in JWT for internal auth
type ClientData struct {
	Expiry  int64  `json:"exp"`
	JwtID   string `json:"jti"`
	Subject string `json:"sub"`
}
