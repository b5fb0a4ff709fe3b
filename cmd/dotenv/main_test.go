package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gandalfthegui/dotenv/internal/envfile"
)

// runApp drives the CLI with in-memory streams and an isolated profile.
func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(strings.NewReader(""), &out, &errOut)
	argv := append([]string{"dotenv", "--profile", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	err = app.Run(context.Background(), argv)
	return out.String(), errOut.String(), err
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		s    string
		n    int
		want string
	}{
		{"hello", 0, ""},
		{"hi", 5, "hi"},
		{"hello", 5, "hello"},
		{"hello world", 5, "he..."},
		{"hello world", 3, "hel"}, // n<=3: no ellipsis
		{"hello world", 8, "hello..."},
		{"", 5, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncate(tc.s, tc.n), "truncate(%q, %d)", tc.s, tc.n)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "****", mask("short"))
	assert.Equal(t, "se****", mask("secret-token"))
	assert.Equal(t, "****", mask("ñandú"))
	assert.Equal(t, "ñá****", mask("ñáéíóú-key"))
	assert.True(t, utf8.ValidString(mask("€€€€€€€€")))
}

func TestPaletteOffForBuffers(t *testing.T) {
	p := paletteFor(&bytes.Buffer{})
	assert.Empty(t, p.c(colorRed))
	assert.Empty(t, p.reset())
}

func TestLoadProfile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		p, err := loadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, profile{}, p)
	})

	t.Run("all fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		content := "path: config/.env\nencoding: latin1\nsilent: true\nexport_compatible: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		p, err := loadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, profile{Path: "config/.env", Encoding: "latin1", Silent: true, ExportCompatible: true}, p)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.yaml")
		require.NoError(t, os.WriteFile(path, []byte("path: [unterminated\n"), 0o644))
		_, err := loadProfile(path)
		assert.Error(t, err)
	})
}

func TestProfileAppliesAndFlagsOverride(t *testing.T) {
	fromProfile := writeEnv(t, "export SOURCE=profile\n")
	fromFlag := writeEnv(t, "SOURCE=flag\n")

	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("path: "+fromProfile+"\nexport_compatible: true\n"), 0o644))

	var out bytes.Buffer
	app := newApp(strings.NewReader(""), &out, &bytes.Buffer{})
	require.NoError(t, app.Run(context.Background(), []string{"dotenv", "--profile", profilePath, "get", "SOURCE"}))
	assert.Equal(t, "profile\n", out.String())

	out.Reset()
	app = newApp(strings.NewReader(""), &out, &bytes.Buffer{})
	require.NoError(t, app.Run(context.Background(), []string{"dotenv", "--profile", profilePath, "--path", fromFlag, "get", "SOURCE"}))
	assert.Equal(t, "flag\n", out.String())
}

func TestPrintFormats(t *testing.T) {
	path := writeEnv(t, "B=2\nA=\"two words\"\nmy.key=x\n")

	t.Run("dotenv", func(t *testing.T) {
		out, _, err := runApp(t, "--path", path, "print")
		require.NoError(t, err)
		assert.Equal(t, "B=2\nA=two words\nmy.key=x\n", out)
	})

	t.Run("shell", func(t *testing.T) {
		out, _, err := runApp(t, "--path", path, "print", "--format", "shell")
		require.NoError(t, err)
		assert.Equal(t, "export B=2\nexport A='two words'\n# skipped my.key: not a valid shell variable name\n", out)
	})

	t.Run("json keeps order", func(t *testing.T) {
		out, _, err := runApp(t, "--path", path, "print", "-f", "json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"B":"2","A":"two words","my.key":"x"}`, out)
		assert.Less(t, strings.Index(out, `"B"`), strings.Index(out, `"A"`))

		var decoded map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Len(t, decoded, 3)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := runApp(t, "--path", path, "print", "-f", "yaml")
		require.NoError(t, err)
		var decoded map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, map[string]string{"B": "2", "A": "two words", "my.key": "x"}, decoded)
		assert.True(t, strings.HasPrefix(out, "B: "), "file order kept: %q", out)
	})

	t.Run("toml", func(t *testing.T) {
		out, _, err := runApp(t, "--path", path, "print", "-f", "toml")
		require.NoError(t, err)
		var decoded map[string]string
		require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, map[string]string{"B": "2", "A": "two words", "my.key": "x"}, decoded)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := runApp(t, "--path", path, "print", "-f", "xml")
		assert.ErrorContains(t, err, "unknown format")
	})
}

func TestYAMLKeepsStringsQuoted(t *testing.T) {
	v := envfile.ValuesOf("FLAG", "true", "PORT", "8080")
	var buf bytes.Buffer
	require.NoError(t, writeValues(&buf, v, "yaml"))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "true", decoded["FLAG"])
	assert.Equal(t, "8080", decoded["PORT"])
}

func TestGet(t *testing.T) {
	path := writeEnv(t, "A=hello\nB=$A\n")

	out, _, err := runApp(t, "--path", path, "get", "B")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)

	_, _, err = runApp(t, "--path", path, "get", "MISSING")
	assert.ErrorContains(t, err, "MISSING is not defined")

	_, _, err = runApp(t, "--path", path, "get")
	assert.ErrorContains(t, err, "usage")
}

func TestSet(t *testing.T) {
	path := writeEnv(t, "# keep me\nTOKEN=old\n")

	out, _, err := runApp(t, "--path", path, "set", "TOKEN", "new value")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# keep me\nTOKEN=new value\n", string(data))

	_, _, err = runApp(t, "--path", path, "set", "ONLYKEY")
	assert.ErrorContains(t, err, "usage")
}

func TestSetDuplicateAndUnrepresentable(t *testing.T) {
	path := writeEnv(t, "A=1\nA=2\n")

	_, _, err := runApp(t, "--path", path, "set", "A", "3")
	require.NoError(t, err)
	out, _, err := runApp(t, "--path", path, "get", "A")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, _, err = runApp(t, "--path", path, "set", "A", "$HOME")
	assert.ErrorIs(t, err, envfile.ErrUnrepresentable)
	assert.NotContains(t, out, "Saved")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A=3\n", string(data))
}

func TestCheck(t *testing.T) {
	t.Setenv("DOTENV_CHECK_EXISTING", "present")
	path := writeEnv(t, "DOTENV_CHECK_NEW=secret-value\nDOTENV_CHECK_EXISTING=other\n")

	out, _, err := runApp(t, "--path", path, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded")
	assert.Contains(t, out, "+ DOTENV_CHECK_NEW=se****")
	assert.Contains(t, out, "= DOTENV_CHECK_EXISTING (already set)")

	_, ok := os.LookupEnv("DOTENV_CHECK_NEW")
	assert.False(t, ok, "check must not modify the process environment")

	out, _, err = runApp(t, "--path", path, "check", "--show")
	require.NoError(t, err)
	assert.Contains(t, out, "+ DOTENV_CHECK_NEW=secret-value")
}

func TestCheckMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, stderr, err := runApp(t, "--path", missing, "check")
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.code)
	assert.Contains(t, stderr, "✗  Could not load "+missing)
	assert.Contains(t, stderr, "failed to load env file")

	_, stderr, err = runApp(t, "--path", missing, "--silent", "check")
	require.True(t, errors.As(err, &exit))
	assert.Empty(t, stderr)
}

func TestRun(t *testing.T) {
	t.Setenv("DOTENV_RUN_VALUE", "")
	path := writeEnv(t, "DOTENV_RUN_VALUE=from-file\n")

	out, _, err := runApp(t, "--path", path, "run", "--", "sh", "-c", `printf '%s' "$DOTENV_RUN_VALUE"`)
	require.NoError(t, err)
	assert.Equal(t, "from-file", out)
}

func TestRunPreloadArgs(t *testing.T) {
	t.Setenv("DOTENV_RUN_PRELOAD", "")
	path := writeEnv(t, "export DOTENV_RUN_PRELOAD=preloaded\n")

	out, _, err := runApp(t, "run",
		"dotenv_config_path="+path,
		"dotenv_config_export_compatible=true",
		"sh", "-c", `printf '%s' "$DOTENV_RUN_PRELOAD"`)
	require.NoError(t, err)
	assert.Equal(t, "preloaded", out)
}

func TestRunExitStatus(t *testing.T) {
	path := writeEnv(t, "")

	_, _, err := runApp(t, "--path", path, "run", "sh", "-c", "exit 3")
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 3, exit.code)

	_, _, err = runApp(t, "--path", path, "run")
	assert.ErrorContains(t, err, "usage")
}
