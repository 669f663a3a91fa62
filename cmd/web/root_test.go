package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFlagsCommand(t *testing.T) {
	t.Setenv("ENABLE_JOB_APPLICATIONS", "TRUE")
	t.Setenv("ENABLE_ADD_JOB_ROLE", "yes")

	out, err := run(t, "flags")
	require.NoError(t, err)

	var flags map[string]bool
	require.NoError(t, json.Unmarshal([]byte(out), &flags))
	assert.Equal(t, map[string]bool{"jobApplications": true, "addJobRole": false}, flags)
}

func TestFlagsCommand_Text(t *testing.T) {
	t.Setenv("ENABLE_JOB_APPLICATIONS", "")
	t.Setenv("ENABLE_ADD_JOB_ROLE", "1")

	out, err := run(t, "flags", "--output", "text")
	require.NoError(t, err)
	assert.Equal(t, "addJobRole\ton\njobApplications\toff\n", out)

	_, err = run(t, "flags", "-o", "yaml")
	assert.Error(t, err)
}

func TestVerifyTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   3,
		"email":    "admin@example.com",
		"userRole": 2,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("cli-secret"))
	require.NoError(t, err)

	out, err := run(t, "verify-token", signed)
	require.NoError(t, err)
	assert.Contains(t, out, `"role": "Admin"`)
	assert.Contains(t, out, "admin@example.com")
}

func TestVerifyTokenCommand_Rejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	_, err := run(t, "verify-token", "garbage")
	assert.Error(t, err)

	_, err = run(t, "verify-token")
	assert.Error(t, err)
}
