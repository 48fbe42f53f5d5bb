package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripinvite/portal/pkg/crypto"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	body := "database:\n" +
		"  driver: sqlite\n" +
		"  sqlite:\n" +
		"    path: " + filepath.Join(dir, "portal.db") + "\n" +
		"log:\n" +
		"  level: error\n" +
		"  format: console\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInviteCreateAndList(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "--config", cfg, "invite", "create",
		"--token", "ana-2026", "--name", "Ana", "--needs-passport", "yes",
		"--base-url", "https://trip.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://trip.example.com/?t=ana-2026\n", out)

	_, err = execute(t, "--config", cfg, "invite", "create", "--token", "ana-2026")
	assert.Error(t, err)

	out, err = execute(t, "--config", cfg, "invite", "create", "--name", "Bo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "/?t="))

	out, err = execute(t, "--config", cfg, "invite", "create",
		"--token", "cy-2026", "--base-url", "https://trip.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://trip.example.com/?t=cy-2026\n", out)

	out, err = execute(t, "--config", cfg, "invite", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, out, "ana-2026")
	assert.Contains(t, out, "Bo")
}

func TestInviteCreate_RejectsPassportValue(t *testing.T) {
	_, err := execute(t, "--config", writeConfig(t), "invite", "create", "--needs-passport", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--needs-passport")
}

func TestMigrate(t *testing.T) {
	out, err := execute(t, "--config", writeConfig(t), "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema up to date\n", out)
}

func TestNotify_WithoutMailSettings(t *testing.T) {
	_, err := execute(t, "--config", writeConfig(t), "notify", "passport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAdminHashToken(t *testing.T) {
	out, err := execute(t, "admin", "hash-token", "open-sesame")
	require.NoError(t, err)
	assert.True(t, crypto.CheckSecretHash("open-sesame", strings.TrimSpace(out)))
}
