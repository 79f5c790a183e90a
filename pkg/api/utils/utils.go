package utils

import (
	"errors"
	"net/http"

	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
)

// DispatchErrResponse sets proper api err response for an error returned by event dispatch.
func DispatchErrResponse(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrUnknownEventKind) {
		c.JSON(http.StatusBadRequest, err)
		return
	}
	var pubErr *errs.PublicationError
	if errors.As(err, &pubErr) {
		failures := multierr.Errors(err)
		messages := make([]string, 0, len(failures))
		for _, f := range failures {
			messages = append(messages, f.Error())
		}
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to publish commit status.", "failures": messages})
		return
	}
	c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
}
