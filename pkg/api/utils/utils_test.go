package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestDispatchErrResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pubErr := func(rev string) error {
		return errs.NewPublicationError("githubStatusPublisher", "B1", rev, errors.New("502"))
	}
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "unknown kind", err: errs.ErrUnknownEventKind, code: http.StatusBadRequest},
		{name: "publication", err: pubErr("a"), code: http.StatusBadGateway},
		{name: "combined", err: multierr.Append(pubErr("a"), pubErr("b")), code: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			DispatchErrResponse(c, tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
