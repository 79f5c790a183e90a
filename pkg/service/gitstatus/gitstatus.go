// Package gitstatus delivers commit status updates to the git SCM providers.
package gitstatus

import (
	"context"
	"time"

	"github.com/LambdaTest/herald/config"
	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/metrics"
	"github.com/LambdaTest/herald/pkg/utils"
	"github.com/avast/retry-go/v4"
	"github.com/drone/go-scm/scm"
	"gopkg.in/guregu/null.v4/zero"
)

type service struct {
	scmProvider  core.SCMProvider
	tokenHandler core.GitTokenHandler
	cache        core.StatusCache
	reportStore  core.StatusReportStore
	problems     core.PublisherProblems
	metrics      *metrics.Metrics
	logger       lumber.Logger
	delivery     config.DeliveryConfig
}

// Service is the GitStatusService, usable as the StatusScheduler of direct delivery.
type Service interface {
	core.GitStatusService
	core.StatusScheduler
}

// New returns a new GitStatusService posting statuses through the go-scm clients of scmProvider.
func New(cfg *config.Config,
	scmProvider core.SCMProvider,
	tokenHandler core.GitTokenHandler,
	cache core.StatusCache,
	reportStore core.StatusReportStore,
	problems core.PublisherProblems,
	m *metrics.Metrics,
	logger lumber.Logger) Service {
	delivery := cfg.Delivery
	if delivery.Attempts == 0 {
		delivery.Attempts = 1
	}
	return &service{
		scmProvider:  scmProvider,
		tokenHandler: tokenHandler,
		cache:        cache,
		reportStore:  reportStore,
		problems:     problems,
		metrics:      m,
		logger:       logger,
		delivery:     delivery,
	}
}

// Schedule delivers update before returning.
func (s *service) Schedule(ctx context.Context, update *core.StatusUpdate) error {
	return s.Deliver(ctx, update)
}

func (s *service) Deliver(ctx context.Context, update *core.StatusUpdate) error {
	start := time.Now()
	key := update.Key()
	acquired, err := s.cache.Acquire(ctx, key, s.delivery.DedupeTTL)
	if err != nil {
		// without the cache a replay may post twice, which the SCM tolerates
		s.logger.Warnf("failed to check delivery of status %s, posting anyway: %v", key, err)
		acquired = true
	}
	if !acquired {
		s.logger.Debugf("status %s already delivered, skipping", key)
		s.metrics.ObserveDelivery(update.Driver.String(), string(update.State), metrics.OutcomeSkipped, 0)
		return nil
	}

	attempts, err := s.post(ctx, update)
	s.record(ctx, update, attempts, err)
	if err != nil {
		s.metrics.ObserveDelivery(update.Driver.String(), string(update.State), metrics.OutcomeFailure, time.Since(start))
		s.reportProblem(ctx, update, err)
		if rerr := s.cache.Release(ctx, key); rerr != nil {
			s.logger.Errorf("failed to release status %s after failed delivery: %v", key, rerr)
		}
		return err
	}
	s.metrics.ObserveDelivery(update.Driver.String(), string(update.State), metrics.OutcomeSuccess, time.Since(start))
	if cerr := s.problems.ClearProblem(ctx, update.BuildID, update.FeatureID); cerr != nil {
		s.logger.Errorf("failed to clear problem of feature %s for build %s: %v", update.FeatureID, update.BuildID, cerr)
	}
	return nil
}

// post calls CreateStatus, retrying server side and network failures. It returns the number of calls made.
func (s *service) post(ctx context.Context, update *core.StatusUpdate) (uint, error) {
	token, err := s.tokenHandler.GetToken(ctx, update.Driver, update.TokenPath)
	if err != nil {
		s.logger.Errorf("failed to get token for feature %s, driver %s, error: %v", update.FeatureID, update.Driver, err)
		return 0, err
	}
	gitSCM, err := s.scmProvider.GetClient(update.Driver, update.ServerURL)
	if err != nil {
		s.logger.Errorf("failed to find git client for driver: %s, error: %v", update.Driver, err)
		return 0, err
	}

	input := &scm.StatusInput{
		Target: update.Target,
		Label:  update.Label,
		Desc:   update.Desc,
		State:  scmState(update.State),
	}
	ctx = token.SetRequestContext(ctx)

	var attempts uint
	err = retry.Do(func() error {
		attempts++
		_, res, cerr := gitSCM.Client.Repositories.CreateStatus(ctx, update.RepoSlug, update.CommitID, input)
		if cerr != nil && !retryable(res) {
			return retry.Unrecoverable(cerr)
		}
		return cerr
	}, retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.Attempts(s.delivery.Attempts),
		retry.Delay(s.delivery.Delay),
		retry.MaxJitter(s.delivery.MaxJitter),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warnf("failed to post %s status for commit %s of %s, retry %d, error: %v",
				update.State, update.CommitID, update.RepoSlug, n, err)
		}),
	)
	if err != nil {
		s.logger.Errorf("failed to post %s status %q for commit %s of %s after %d attempts, error: %v",
			update.State, update.Label, update.CommitID, update.RepoSlug, attempts, err)
		return attempts, err
	}
	s.logger.Debugf("posted %s status %q for commit %s of %s", update.State, update.Label, update.CommitID, update.RepoSlug)
	return attempts, nil
}

func (s *service) record(ctx context.Context, update *core.StatusUpdate, attempts uint, deliveryErr error) {
	report := &core.StatusReport{
		ID:          utils.GenerateUUID(),
		UpdateID:    update.ID,
		FeatureID:   update.FeatureID,
		BuildID:     update.BuildID,
		Driver:      update.Driver,
		RepoSlug:    update.RepoSlug,
		CommitID:    update.CommitID,
		Context:     update.Label,
		State:       update.State,
		Description: update.Desc,
		TargetURL:   update.Target,
		Delivered:   deliveryErr == nil,
		Attempts:    int(attempts),
		Created:     time.Now(),
	}
	if deliveryErr != nil {
		report.Error = zero.StringFrom(deliveryErr.Error())
	} else {
		report.DeliveredAt = zero.TimeFrom(time.Now())
	}
	if err := s.reportStore.Create(ctx, report); err != nil {
		s.logger.Errorf("failed to store status report of update %s, error: %v", update.ID, err)
	}
}

func (s *service) reportProblem(ctx context.Context, update *core.StatusUpdate, deliveryErr error) {
	problem := &core.Problem{
		FeatureID:   update.FeatureID,
		PublisherID: update.PublisherID,
		BuildID:     update.BuildID,
		Message:     deliveryErr.Error(),
		ReportedAt:  time.Now(),
	}
	if err := s.problems.ReportProblem(ctx, problem); err != nil {
		s.logger.Errorf("failed to report problem of feature %s for build %s: %v", update.FeatureID, update.BuildID, err)
	}
}
