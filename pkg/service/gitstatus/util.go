package gitstatus

import (
	"net/http"

	"github.com/LambdaTest/herald/pkg/core"
	"github.com/drone/go-scm/scm"
)

func scmState(state core.StatusState) scm.State {
	switch state {
	case core.StatusPending:
		return scm.StatePending
	case core.StatusRunning:
		return scm.StateRunning
	case core.StatusSuccess:
		return scm.StateSuccess
	case core.StatusFailure:
		return scm.StateFailure
	case core.StatusCanceled:
		return scm.StateCanceled
	case core.StatusError:
		return scm.StateError
	default:
		return scm.StateUnknown
	}
}

// retryable reports whether a failed CreateStatus call may succeed when repeated.
// A missing response is a network failure.
func retryable(res *scm.Response) bool {
	if res == nil {
		return true
	}
	return res.Status >= http.StatusInternalServerError || res.Status == http.StatusTooManyRequests
}
