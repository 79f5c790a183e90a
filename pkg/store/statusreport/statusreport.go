package statusreport

import (
	"context"

	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const errMsg = "failed to insert commit status report"

type statusReportStore struct {
	db     core.DB
	logger lumber.Logger
}

// New returns a new StatusReportStore
func New(db core.DB, logger lumber.Logger) core.StatusReportStore {
	return &statusReportStore{db: db, logger: logger}
}

func (s *statusReportStore) Create(ctx context.Context, report *core.StatusReport) error {
	return s.db.ExecuteTransactionWithRetry(ctx,
		constants.DefaultTransactionRetries,
		constants.DefaultTransactionDelay,
		constants.DefaultTransactionMaxJitter,
		errMsg,
		func(tx *sqlx.Tx) error {
			if _, err := tx.NamedExecContext(ctx, insertQuery, report); err != nil {
				return errs.SQLError(err)
			}
			return nil
		})
}

func (s *statusReportStore) FindByCommit(ctx context.Context, repoSlug, commitID string) ([]*core.StatusReport, error) {
	reports := make([]*core.StatusReport, 0)
	return reports, s.db.Execute(func(db *sqlx.DB) error {
		if err := db.SelectContext(ctx, &reports, findByCommitQuery, repoSlug, commitID); err != nil {
			return errors.Wrapf(errs.SQLError(err), "failed to find status reports of %s@%s", repoSlug, commitID)
		}
		return nil
	})
}

const insertQuery = `
INSERT INTO
	commit_status_report(
		id,
		update_id,
		feature_id,
		build_id,
		driver,
		repo_slug,
		commit_id,
		context,
		state,
		description,
		target_url,
		delivered,
		attempts,
		error,
		created_at,
		delivered_at
	)
VALUES (
	:id,
	:update_id,
	:feature_id,
	:build_id,
	:driver,
	:repo_slug,
	:commit_id,
	:context,
	:state,
	:description,
	:target_url,
	:delivered,
	:attempts,
	:error,
	:created_at,
	:delivered_at
)
`

const findByCommitQuery = `
SELECT
	id,
	update_id,
	feature_id,
	build_id,
	driver,
	repo_slug,
	commit_id,
	context,
	state,
	description,
	target_url,
	delivered,
	attempts,
	error,
	created_at,
	delivered_at
FROM
	commit_status_report
WHERE
	repo_slug = ?
	AND commit_id = ?
ORDER BY
	created_at DESC
`
