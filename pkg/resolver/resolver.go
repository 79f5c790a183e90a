// Package resolver expands %name% parameter references in build parameter values.
package resolver

import (
	"strings"

	"github.com/LambdaTest/herald/pkg/core"
	errs "github.com/LambdaTest/herald/pkg/errors"
)

const refDelimiter = '%'

type resolver struct{}

// New returns a ParameterResolver. It holds no state and is safe for concurrent use.
func New() core.ParameterResolver {
	return resolver{}
}

// Resolve replaces every %name% in value with params[name], references inside
// referenced values are resolved too. %% stands for a literal percent sign.
func (r resolver) Resolve(value string, params map[string]string) (string, error) {
	return resolve(value, params, map[string]struct{}{})
}

func resolve(value string, params map[string]string, visiting map[string]struct{}) (string, error) {
	if strings.IndexByte(value, refDelimiter) < 0 {
		return value, nil
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] != refDelimiter {
			b.WriteByte(value[i])
			continue
		}
		end := strings.IndexByte(value[i+1:], refDelimiter)
		if end < 0 {
			// unterminated reference, keep the rest verbatim
			b.WriteString(value[i:])
			break
		}
		name := value[i+1 : i+1+end]
		i += end + 1
		if name == "" {
			b.WriteByte(refDelimiter)
			continue
		}
		ref, ok := params[name]
		if !ok {
			return "", errs.ErrUnresolvedReference
		}
		if _, ok := visiting[name]; ok {
			return "", errs.ErrReferenceCycle
		}
		visiting[name] = struct{}{}
		resolved, err := resolve(ref, params, visiting)
		delete(visiting, name)
		if err != nil {
			return "", err
		}
		b.WriteString(resolved)
	}
	return b.String(), nil
}
