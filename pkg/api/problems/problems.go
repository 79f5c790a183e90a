package problems

import (
	"net/http"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/gin-gonic/gin"
)

// HandleList lists the publication problems of a build.
func HandleList(problemStore core.PublisherProblems, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		buildID := c.Param("buildID")
		problems, err := problemStore.FindByBuild(c.Request.Context(), buildID)
		if err != nil {
			logger.Errorf("failed to find problems of build %s: %v", buildID, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		if problems == nil {
			problems = []*core.Problem{}
		}
		c.JSON(http.StatusOK, problems)
	}
}
