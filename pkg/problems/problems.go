// Package problems stores the commit status publication problems of builds in redis.
package problems

import (
	"context"
	"sort"

	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type problemStore struct {
	redisDB core.RedisDB
	logger  lumber.Logger
}

// New returns the redis backed PublisherProblems.
func New(redisDB core.RedisDB, logger lumber.Logger) core.PublisherProblems {
	return &problemStore{redisDB: redisDB, logger: logger}
}

func (p *problemStore) ReportProblem(ctx context.Context, problem *core.Problem) error {
	value, err := json.Marshal(problem)
	if err != nil {
		return err
	}
	key := utils.GetProblemsHashKey(problem.BuildID)
	if err := p.redisDB.Client().HSet(ctx, key, problem.FeatureID, value).Err(); err != nil {
		return errors.Wrapf(err, "failed to report problem of feature %s for build %s", problem.FeatureID, problem.BuildID)
	}
	p.logger.Debugf("reported problem of feature %s for build %s: %s", problem.FeatureID, problem.BuildID, problem.Message)
	return nil
}

func (p *problemStore) ClearProblem(ctx context.Context, buildID, featureID string) error {
	if err := p.redisDB.Client().HDel(ctx, utils.GetProblemsHashKey(buildID), featureID).Err(); err != nil {
		return errors.Wrapf(err, "failed to clear problem of feature %s for build %s", featureID, buildID)
	}
	return nil
}

func (p *problemStore) FindByBuild(ctx context.Context, buildID string) ([]*core.Problem, error) {
	values, err := p.redisDB.Client().HGetAll(ctx, utils.GetProblemsHashKey(buildID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find problems for build %s", buildID)
	}
	problems := make([]*core.Problem, 0, len(values))
	for featureID, value := range values {
		problem := new(core.Problem)
		if err := json.UnmarshalFromString(value, problem); err != nil {
			p.logger.Errorf("skipping malformed problem of feature %s for build %s, error: %v", featureID, buildID, err)
			continue
		}
		problems = append(problems, problem)
	}
	sort.Slice(problems, func(i, j int) bool {
		return problems[i].FeatureID < problems[j].FeatureID
	})
	return problems, nil
}
