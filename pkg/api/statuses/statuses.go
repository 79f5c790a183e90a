package statuses

import (
	"net/http"
	"strings"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type commitRef struct {
	Slug string `json:"repo" binding:"required,slug"`
	SHA  string `json:"sha" binding:"required,hexadecimal,min=7,max=64"`
}

// parseCommitRef splits the wildcard path `/<slug...>/<sha>`. The slug may have
// more than two segments, as gitlab subgroups do.
func parseCommitRef(path string) *commitRef {
	path = strings.Trim(path, "/")
	ref := new(commitRef)
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		ref.Slug, ref.SHA = path[:idx], path[idx+1:]
	}
	return ref
}

// HandleList lists the commit status reports of a commit, most recent first.
func HandleList(reportStore core.StatusReportStore, logger lumber.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := parseCommitRef(c.Param("path"))
		if err := binding.Validator.ValidateStruct(ref); err != nil {
			c.JSON(http.StatusBadRequest, errs.ValidationErr(err))
			return
		}
		slug := ref.Slug
		reports, err := reportStore.FindByCommit(c.Request.Context(), slug, ref.SHA)
		if err != nil {
			logger.Errorf("failed to find status reports of %s@%s: %v", slug, ref.SHA, err)
			c.JSON(http.StatusInternalServerError, errs.GenericErrorMessage)
			return
		}
		if len(reports) == 0 {
			c.JSON(http.StatusNotFound, errs.EntityNotFoundErr("Status reports", "commit"))
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}
