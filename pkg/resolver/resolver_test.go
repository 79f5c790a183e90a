package resolver

import (
	"testing"

	errs "github.com/LambdaTest/herald/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	params := map[string]string{
		"env.STAGE":       "lint",
		"ci.prefix":       "ci/%env.STAGE%",
		"loop.a":          "%loop.b%",
		"loop.b":          "%loop.a%",
		"branch":          "main",
		"nested.missing":  "%does.not.exist%",
		"percent.literal": "100%%",
	}
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "plain", value: "ci/lint", want: "ci/lint"},
		{name: "single reference", value: "ci/%env.STAGE%", want: "ci/lint"},
		{name: "nested reference", value: "%ci.prefix% (%branch%)", want: "ci/lint (main)"},
		{name: "escaped percent", value: "%percent.literal% done", want: "100% done"},
		{name: "unterminated", value: "50% of builds", want: "50% of builds"},
		{name: "unknown reference", value: "%nope%", wantErr: errs.ErrUnresolvedReference},
		{name: "unknown nested reference", value: "%nested.missing%", wantErr: errs.ErrUnresolvedReference},
		{name: "cycle", value: "%loop.a%", wantErr: errs.ErrReferenceCycle},
	}
	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.value, params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRepeatedReference(t *testing.T) {
	params := map[string]string{"name": "x"}
	got, err := New().Resolve("%name%-%name%", params)
	assert.NoError(t, err)
	assert.Equal(t, "x-x", got)
}
