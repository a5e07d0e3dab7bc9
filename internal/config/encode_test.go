package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatYAML, FormatTOML} {
		format := format
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			original, err := Parse([]byte(yamlDocument), FormatYAML)
			require.NoError(t, err)

			data, err := Marshal(original, format)
			require.NoError(t, err)

			reloaded, err := Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, original, reloaded)
		})
	}
}

func TestMarshal_OmitsAbsentFields(t *testing.T) {
	t.Parallel()

	cfg := &GatewayConfig{
		AuthorizationAPIURL: "http://auth.internal/check",
		Rules: []RouteConfig{
			{TargetService: "default", TargetPort: "80"},
		},
	}

	for _, format := range []Format{FormatYAML, FormatTOML} {
		format := format
		data, err := Marshal(cfg, format)
		require.NoError(t, err)

		out := string(data)
		for _, key := range []string{"host", "path", "header", "authentication_required", "services", "null"} {
			assert.NotContains(t, out, key, "format %s", format)
		}
		assert.Contains(t, out, "target_service")
	}
}

func TestMarshal_KeepsExplicitFalseAndEmptyPattern(t *testing.T) {
	t.Parallel()

	cfg := &GatewayConfig{
		AuthorizationAPIURL: "http://auth.internal/check",
		Rules: []RouteConfig{
			{
				Path:                   StringPtr(""),
				TargetService:          "default",
				TargetPort:             "80",
				AuthenticationRequired: BoolPtr(false),
			},
		},
	}

	for _, format := range []Format{FormatYAML, FormatTOML} {
		format := format
		data, err := Marshal(cfg, format)
		require.NoError(t, err)

		reloaded, err := Parse(data, format)
		require.NoError(t, err)
		require.Len(t, reloaded.Rules, 1)
		require.NotNil(t, reloaded.Rules[0].Path, "format %s", format)
		assert.Equal(t, "", *reloaded.Rules[0].Path)
		require.NotNil(t, reloaded.Rules[0].AuthenticationRequired)
		assert.False(t, *reloaded.Rules[0].AuthenticationRequired)
	}
}

func TestMarshal_EmptyRules(t *testing.T) {
	t.Parallel()

	data, err := Marshal(&GatewayConfig{AuthorizationAPIURL: "http://auth"}, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rules: []")

	reloaded, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.Rules)
	assert.Empty(t, reloaded.Rules)
}

func TestMarshal_LegacyServicesWrittenAsRules(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("authorization_api_url: x\nservices:\n  - target_service: a\n    target_port: \"1\"\n"), FormatYAML)
	require.NoError(t, err)

	data, err := Marshal(cfg, FormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "rules:"))
	assert.NotContains(t, string(data), "services")
}

func TestMarshal_Errors(t *testing.T) {
	t.Parallel()

	_, err := Marshal(nil, FormatYAML)
	assert.Error(t, err)

	_, err = Marshal(&GatewayConfig{}, Format("xml"))
	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "xml", formatErr.Format)
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	original, err := Parse([]byte(tomlDocument), FormatTOML)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"out.toml", "out.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, original))

		reloaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, original, reloaded)
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	t.Parallel()

	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.yaml"), &GatewayConfig{})
	assert.Error(t, err)
}
