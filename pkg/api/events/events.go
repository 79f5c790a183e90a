package events

import (
	"net/http"

	apiutils "github.com/LambdaTest/herald/pkg/api/utils"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// HandleCreate dispatches a build lifecycle event posted by the CI engine.
func HandleCreate(dispatcher core.EventDispatcher, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		event := new(core.LifecycleEvent)
		if err := c.ShouldBindJSON(event); err != nil {
			logger.Errorf("error while binding json %v", err)
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		if err := dispatcher.Dispatch(c.Request.Context(), event); err != nil {
			logger.Errorf("failed to dispatch %s of build %s: %v", event.Kind, event.Build.ID, err)
			apiutils.DispatchErrResponse(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"id": event.ID})
	}
}
