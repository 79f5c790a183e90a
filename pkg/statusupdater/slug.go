package statusupdater

import (
	"net/url"
	"strings"

	errs "github.com/LambdaTest/herald/pkg/errors"
)

// RepoSlug returns the "<namespace>/<repo>" of a VCS root fetch url.
// It accepts http(s), ssh:// and git:// urls and the scp-like "git@host:org/repo.git" form.
func RepoSlug(fetchURL string) (string, error) {
	raw := strings.TrimSpace(fetchURL)
	if raw == "" {
		return "", errs.ErrInvalidRepoURL
	}

	var path string
	if !strings.Contains(raw, "://") {
		// scp-like syntax, user@host:path
		idx := strings.Index(raw, ":")
		if idx < 0 {
			return "", errs.ErrInvalidRepoURL
		}
		path = raw[idx+1:]
	} else {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return "", errs.ErrInvalidRepoURL
		}
		path = u.Path
	}

	path = strings.Trim(path, "/")
	path = strings.TrimSuffix(path, ".git")
	if strings.Count(path, "/") < 1 {
		return "", errs.ErrInvalidRepoURL
	}
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			return "", errs.ErrInvalidRepoURL
		}
	}
	return path, nil
}
