package middleware

import (
	"net/http"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// ClientDataKey is the gin context key holding the *core.ClientData of an authorized caller.
const ClientDataKey = "clientData"

// HandleJWTVerificationInternal authorizes the CI engine calling the internal API.
func HandleJWTVerificationInternal(internalJWT core.Session, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientData, err := internalJWT.AuthorizeInternal(c)
		if err != nil {
			logger.Errorf("failed to authorize internal request to %s: %v", c.FullPath(), err)
			if !c.IsAborted() {
				c.AbortWithStatusJSON(http.StatusForbidden, errs.ErrInvalidJWTToken)
			}
			return
		}
		c.Set(ClientDataKey, clientData)
		c.Next()
	}
}
