package utils

import (
	"fmt"
	"strings"

	"github.com/LambdaTest/herald/pkg/constants"
	"github.com/google/uuid"
)

// GenerateUUID generates uuid v4
func GenerateUUID() string {
	uuidV4 := uuid.New() // panics on error
	return strings.Map(func(r rune) rune {
		if r == '-' {
			return -1
		}
		return r
	}, uuidV4.String())
}

// GetProblemsHashKey generates the redis hash holding the publication problems of buildID
func GetProblemsHashKey(buildID string) string {
	return constants.ProblemsKeyPrefix + buildID
}

// GetCommitMessageKey generates the kafka message key of a commit, updates of one
// commit share a partition.
func GetCommitMessageKey(repoSlug, commitID string) string {
	return fmt.Sprintf("%s@%s", repoSlug, commitID)
}
