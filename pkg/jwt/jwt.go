// Package jwt issues and verifies the tokens the CI engine uses on the internal API.
package jwt

import (
	"net/http"
	"strings"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	jsoniter "github.com/json-iterator/go"
)

const (
	defaultSigningAlgo     = "HS256"
	defaultTokenHeaderName = "Bearer"
	defaultTimeout         = time.Hour
)

// Authorizer provides the HMAC signed JSON-Web-Token authentication of internal callers.
// On failure, a 403 HTTP response is returned.
type Authorizer struct {
	// signing algorithm - possible values are HS256, HS384 or HS512
	signingAlgorithm string
	// Duration that a jwt token is valid.
	timeout time.Duration
	// TokenHeadName is a string in the header. Default value is "Bearer"
	tokenHeadName string
	secret        []byte
	logger        lumber.Logger
}

// New returns a new internal session authorizer
func New(cfg *config.Config, logger lumber.Logger) (core.Session, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.ErrMissingJWTSecret
	}
	timeout := cfg.JWT.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Authorizer{
		signingAlgorithm: defaultSigningAlgo,
		tokenHeadName:    defaultTokenHeaderName,
		timeout:          timeout,
		secret:           []byte(cfg.JWT.Secret),
		logger:           logger,
	}, nil
}

// CreateTokenInternal creates an internal JWT token for subject.
func (a *Authorizer) CreateTokenInternal(subject string) (string, error) {
	claims := NewClaims()
	claims.SetIssuedAt(time.Now().Unix())
	claims.SetExpiry(time.Now().Add(a.timeout).Unix())
	claims.SetJTI(utils.GenerateUUID())
	if err := claims.SetSubject(subject); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(a.signingAlgorithm), claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		a.logger.Errorf("failed to create JWT token, error %v", err)
		return "", errors.ErrFailedTokenCreation
	}
	return tokenString, nil
}

// AuthorizeInternal parses and validates the internal JWT Token
func (a *Authorizer) AuthorizeInternal(c *gin.Context) (*core.ClientData, error) {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, errors.ErrMissingAuthToken)
		return nil, errors.ErrMissingAuthToken
	}
	parts := strings.Split(authHeader, " ")
	if !(len(parts) == 2 && parts[0] == a.tokenHeadName) {
		a.logger.Errorf("Error while parsing auth token, got Authorization header of length %d", len(authHeader))
		c.AbortWithStatusJSON(http.StatusForbidden, errors.ErrInvalidAuthHeader)
		return nil, errors.ErrInvalidAuthHeader
	}
	token := parts[1]
	if token == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, errors.ErrMissingAuthToken)
		return nil, errors.ErrMissingAuthToken
	}

	claims, err := a.parseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, err)
		return nil, err
	}

	clientData, err := a.extractData(claims)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, err)
		return nil, err
	}
	return clientData, nil
}

func (a *Authorizer) parseToken(token string) (*Claims, error) {
	jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if jwt.GetSigningMethod(a.signingAlgorithm) != t.Method {
			return nil, errors.ErrInvalidSigningAlgorithm
		}
		return a.secret, nil
	})
	if err != nil {
		a.logger.Errorf("error while parsing jwt token, error: %v", err)
		return nil, errors.ErrInvalidJWTToken
	}

	mapClaims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.ErrInvalidJWTToken
	}
	claims := NewClaims()
	claims.MapClaims = mapClaims

	if err := claims.Valid(); err != nil {
		a.logger.Errorf("error while validating jwt claims, error: %v", err)
		return nil, err
	}
	return claims, nil
}

func (a *Authorizer) extractData(claims *Claims) (*core.ClientData, error) {
	rawBytes, err := claims.MarshalJSON()
	if err != nil {
		a.logger.Errorf("failed to marshall jwt claim payload, error:%v", err)
		return nil, errors.ErrMarshalJSON
	}
	clientData := new(core.ClientData)

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	if err = json.Unmarshal(rawBytes, clientData); err != nil {
		a.logger.Errorf("failed to unmarshall jwt claim payload, error:%v", err)
		return nil, errors.ErrUnMarshalJSON
	}
	return clientData, nil
}
