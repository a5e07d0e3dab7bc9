package routing

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avaroute/internal/config"
)

func TestParseHeaderRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      *config.HeaderConfig
		wantNil     bool
		wantMissing string
		wantInvalid string
		wantName    string
		wantValue   string
	}{
		{
			name:    "absent header",
			header:  nil,
			wantNil: true,
		},
		{
			name:      "complete header",
			header:    &config.HeaderConfig{Name: config.StringPtr("X-Tenant"), Value: config.StringPtr("blue")},
			wantName:  "X-Tenant",
			wantValue: "blue",
		},
		{
			name:      "empty value is allowed",
			header:    &config.HeaderConfig{Name: config.StringPtr("X-Debug"), Value: config.StringPtr("")},
			wantName:  "X-Debug",
			wantValue: "",
		},
		{
			name:        "name only",
			header:      &config.HeaderConfig{Name: config.StringPtr("X-Tenant")},
			wantMissing: "header.value",
		},
		{
			name:        "value only",
			header:      &config.HeaderConfig{Value: config.StringPtr("blue")},
			wantMissing: "header.name",
		},
		{
			name:        "empty object",
			header:      &config.HeaderConfig{},
			wantMissing: "header.name",
		},
		{
			name:        "invalid name",
			header:      &config.HeaderConfig{Name: config.StringPtr("X Tenant"), Value: config.StringPtr("blue")},
			wantInvalid: "header.name",
		},
		{
			name:        "empty name",
			header:      &config.HeaderConfig{Name: config.StringPtr(""), Value: config.StringPtr("blue")},
			wantInvalid: "header.name",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, err := ParseHeaderRule(4, tt.header)

			switch {
			case tt.wantMissing != "":
				var missing *MissingFieldError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, tt.wantMissing, missing.Field)
				assert.Equal(t, 4, missing.Index)
				assert.Nil(t, rule)
			case tt.wantInvalid != "":
				var invalid *InvalidFieldError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.wantInvalid, invalid.Field)
				assert.Nil(t, rule)
			case tt.wantNil:
				require.NoError(t, err)
				assert.Nil(t, rule)
			default:
				require.NoError(t, err)
				require.NotNil(t, rule)
				assert.Equal(t, tt.wantName, rule.Name())
				assert.Equal(t, tt.wantValue, rule.Value())
			}
		})
	}
}

func TestHeaderRule_Match(t *testing.T) {
	t.Parallel()

	rule := NewHeaderRule("X-Tenant", "blue")

	tests := []struct {
		name    string
		headers http.Header
		want    bool
	}{
		{name: "exact", headers: http.Header{"X-Tenant": {"blue"}}, want: true},
		{name: "value case differs", headers: http.Header{"X-Tenant": {"Blue"}}, want: false},
		{name: "value prefix only", headers: http.Header{"X-Tenant": {"blueberry"}}, want: false},
		{name: "one of several values", headers: http.Header{"X-Tenant": {"red", "blue"}}, want: true},
		{name: "non-canonical key", headers: http.Header{"x-tenant": {"blue"}}, want: true},
		{name: "missing header", headers: http.Header{"X-Other": {"blue"}}, want: false},
		{name: "nil headers", headers: nil, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rule.Match(tt.headers))
		})
	}
}

func TestHeaderRule_Match_NameCaseInsensitive(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("x-tenant", "blue")

	assert.True(t, NewHeaderRule("X-TENANT", "blue").Match(headers))
	assert.True(t, NewHeaderRule("x-tenant", "blue").Match(headers))
}

func TestHeaderRule_Config(t *testing.T) {
	t.Parallel()

	hc := NewHeaderRule("X-Tenant", "blue").Config()
	require.NotNil(t, hc.Name)
	require.NotNil(t, hc.Value)
	assert.Equal(t, "X-Tenant", *hc.Name)
	assert.Equal(t, "blue", *hc.Value)
}
