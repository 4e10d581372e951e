package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery_admin_echo/internal/router"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(router.DefaultTable())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+len(router.DefaultTable().Routes()))
	assert.True(t, strings.HasPrefix(lines[0], "PATTERN"))
	assert.Contains(t, out, "/admin/:adminId")
	assert.Contains(t, out, "user_detail")
}

func TestResolveCommand(t *testing.T) {
	out, err := run(t, "resolve", "/driver/7", "/admin/new")
	require.NoError(t, err)
	assert.Contains(t, out, "/driver/7 -> user_detail entity=driver pattern=/driver/:driverId driverId=7")
	assert.Contains(t, out, "/admin/new -> new_admin entity=admin")
}

func TestResolveCommandReportsMisses(t *testing.T) {
	out, err := run(t, "resolve", "/nonexistent", "/")
	require.Error(t, err)
	assert.Contains(t, out, "/nonexistent -> not_found")
	assert.Contains(t, out, "/ -> home")
}
