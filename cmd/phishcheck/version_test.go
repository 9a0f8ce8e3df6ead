package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "phishcheck version")
	assert.Contains(t, buf.String(), "commit:")
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, getVersion())
	assert.NotEmpty(t, getCommit())
}
