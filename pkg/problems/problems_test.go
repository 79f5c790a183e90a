package problems

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/LambdaTest/herald/pkg/core"
	"github.com/LambdaTest/herald/pkg/lumber"
	"github.com/LambdaTest/herald/pkg/redis"
	"github.com/LambdaTest/herald/pkg/utils"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// integration test, needs HERALD_TEST_REDIS_ADDR
func TestProblems(t *testing.T) {
	addr := os.Getenv("HERALD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HERALD_TEST_REDIS_ADDR not set")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{EnableConsole: true}, false, lumber.InstanceZapLogger)
	require.NoError(t, err)

	ctx := context.Background()
	store := New(redis.Wrap(client), logger)
	buildID := utils.GenerateUUID()
	defer client.Del(ctx, utils.GetProblemsHashKey(buildID))

	reportedAt := time.Now().UTC().Truncate(time.Second)
	for _, featureID := range []string{"feature-b", "feature-a"} {
		require.NoError(t, store.ReportProblem(ctx, &core.Problem{
			FeatureID:   featureID,
			PublisherID: core.GitHubPublisherID,
			BuildID:     buildID,
			Message:     "github: 502 bad gateway",
			ReportedAt:  reportedAt,
		}))
	}

	problems, err := store.FindByBuild(ctx, buildID)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "feature-a", problems[0].FeatureID)
	assert.Equal(t, "feature-b", problems[1].FeatureID)
	assert.True(t, reportedAt.Equal(problems[0].ReportedAt))

	require.NoError(t, store.ClearProblem(ctx, buildID, "feature-a"))
	problems, err = store.FindByBuild(ctx, buildID)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "feature-b", problems[0].FeatureID)
}
