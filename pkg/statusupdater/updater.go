// Package statusupdater turns build lifecycle reports into commit status updates.
package statusupdater

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/utils"
)

type updater struct {
	scheduler   core.StatusScheduler
	frontendURL string
	descPrefix  string
	logger      lumber.Logger
}

// New returns a ChangeStatusUpdater whose handlers hand their updates to scheduler.
func New(cfg *config.Config, scheduler core.StatusScheduler, logger lumber.Logger) core.ChangeStatusUpdater {
	return &updater{
		scheduler:   scheduler,
		frontendURL: strings.TrimSuffix(cfg.FrontendURL, "/"),
		descPrefix:  cfg.Delivery.DescriptionPrefix,
		logger:      logger,
	}
}

func (u *updater) GetUpdateHandler(root *core.VcsRoot,
	params *core.PublisherParams,
	publisher core.CommitStatusPublisher) core.StatusHandler {
	return &handler{
		updater:   u,
		root:      root,
		params:    params,
		publisher: publisher,
	}
}

type handler struct {
	updater   *updater
	root      *core.VcsRoot
	params    *core.PublisherParams
	publisher core.CommitStatusPublisher
}

func (h *handler) ShouldReportOnStart() bool {
	return h.params.ReportOnStart
}

func (h *handler) ShouldReportOnFinish() bool {
	return h.params.ReportOnFinish
}

func (h *handler) ReportStarted(ctx context.Context, revision *core.Revision, build *core.Build) error {
	desc := "build started"
	return h.schedule(ctx, revision, build, core.StatusPending, desc)
}

func (h *handler) ReportCompleted(ctx context.Context, revision *core.Revision, build *core.Build) error {
	desc := "build finished"
	if build.StatusText != "" {
		desc = fmt.Sprintf("%s: %s", desc, build.StatusText)
	}
	return h.schedule(ctx, revision, build, completedState(build.Status), desc)
}

func (h *handler) schedule(ctx context.Context,
	revision *core.Revision,
	build *core.Build,
	state core.StatusState,
	desc string) error {
	repoSlug, err := RepoSlug(h.root.URL)
	if err != nil {
		h.updater.logger.Errorf("failed to find repository of VCS root %s with url %q, error: %v", h.root.ID, h.root.URL, err)
		return err
	}
	update := &core.StatusUpdate{
		ID:          utils.GenerateUUID(),
		EventID:     core.EventIDFromContext(ctx),
		FeatureID:   h.params.FeatureID,
		PublisherID: h.publisher.ID(),
		BuildID:     build.ID,
		Driver:      h.params.Driver,
		ServerURL:   h.params.ServerURL,
		TokenPath:   h.params.TokenPath,
		RepoSlug:    repoSlug,
		CommitID:    revision.Revision,
		State:       state,
		Label:       h.params.Context,
		Desc:        h.updater.description(desc),
		Target:      h.updater.targetURL(build),
		Created:     time.Now(),
	}
	h.updater.logger.Debugf("scheduling %s status %q for commit %s of %s, build %s",
		update.State, update.Label, update.CommitID, update.RepoSlug, update.BuildID)
	return h.updater.scheduler.Schedule(ctx, update)
}

// maxDescriptionLength is the longest status description GitHub accepts.
const maxDescriptionLength = 140

func (u *updater) description(desc string) string {
	if u.descPrefix != "" {
		desc = u.descPrefix + " " + desc
	}
	return truncate(desc, maxDescriptionLength)
}

// truncate shortens s to at most n runes, ending it with an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func (u *updater) targetURL(build *core.Build) string {
	if build.WebURL != "" {
		return build.WebURL
	}
	if u.frontendURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/builds/%s", u.frontendURL, build.ID)
}

func completedState(status core.BuildStatus) core.StatusState {
	switch status {
	case core.BuildSuccess:
		return core.StatusSuccess
	case core.BuildFailure:
		return core.StatusFailure
	case core.BuildInterrupted:
		return core.StatusCanceled
	case core.BuildRunning:
		return core.StatusPending
	default:
		return core.StatusError
	}
}
