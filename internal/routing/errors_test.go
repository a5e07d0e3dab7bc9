package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

func TestValidationErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing rule field",
			err:  &MissingFieldError{Field: "target_port", Index: 2},
			want: "rules[2].target_port: required field is missing",
		},
		{
			name: "missing document field",
			err:  &MissingFieldError{Field: "authorization_api_url", Index: -1},
			want: "authorization_api_url: required field is missing",
		},
		{
			name: "invalid pattern",
			err:  &InvalidPatternError{Field: "host", Index: 0, Text: "(", Cause: errors.New("missing closing )")},
			want: `rules[0].host: invalid pattern "(": missing closing )`,
		},
		{
			name: "invalid field",
			err:  &InvalidFieldError{Field: "header.name", Index: 1, Message: "invalid header name: X Y"},
			want: "rules[1].header.name: invalid header name: X Y",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, util.ErrConfigInvalid))
			assert.True(t, util.IsConfigError(tt.err))
			assert.False(t, errors.Is(tt.err, util.ErrNotFound))
		})
	}
}

func TestValidationErrors_IsByType(t *testing.T) {
	t.Parallel()

	missing := &MissingFieldError{Field: "rules", Index: -1}
	assert.True(t, errors.Is(missing, &MissingFieldError{}))
	assert.False(t, errors.Is(missing, &InvalidPatternError{}))

	pattern := &InvalidPatternError{Field: "path", Index: 0, Cause: errors.New("bad")}
	assert.True(t, errors.Is(pattern, &InvalidPatternError{}))
	assert.False(t, errors.Is(pattern, &InvalidFieldError{}))

	wrapped := util.WrapError(pattern, "reload")
	assert.True(t, errors.Is(wrapped, util.ErrConfigInvalid))
}

func TestErrNoTable(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(ErrNoTable, util.ErrNotFound))
	assert.False(t, errors.Is(ErrNoTable, util.ErrConfigInvalid))
}
