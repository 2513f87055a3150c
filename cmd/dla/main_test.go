package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "1.2.3", "unknown", "unknown"
	assert.Equal(t, "1.2.3", versionString())

	Commit = "abc1234"
	assert.Equal(t, "1.2.3 (commit abc1234)", versionString())

	BuildDate = "2026-01-02"
	assert.Equal(t, "1.2.3 (commit abc1234, built 2026-01-02)", versionString())
}

func TestRunMainSuccess(t *testing.T) {
	origExecute := executeFunc
	t.Cleanup(func() { executeFunc = origExecute })
	executeFunc = func(args []string, stdout io.Writer, stderr io.Writer) error {
		return nil
	}

	exitCode := -1
	runMain([]string{"dla"}, io.Discard, io.Discard, func(code int) { exitCode = code })
	assert.Equal(t, -1, exitCode, "success must not call exit")
}

func TestRunMainSilentExit(t *testing.T) {
	origExecute := executeFunc
	t.Cleanup(func() { executeFunc = origExecute })
	executeFunc = func(args []string, stdout io.Writer, stderr io.Writer) error {
		return &SilentExitError{Code: 3}
	}

	var stderr bytes.Buffer
	exitCode := -1
	runMain([]string{"dla"}, io.Discard, &stderr, func(code int) { exitCode = code })
	assert.Equal(t, 3, exitCode)
	assert.Empty(t, stderr.String())
}

func TestRunMainErrorPrintsAndExits(t *testing.T) {
	origExecute := executeFunc
	t.Cleanup(func() { executeFunc = origExecute })
	executeFunc = func(args []string, stdout io.Writer, stderr io.Writer) error {
		return errors.New("boom")
	}

	var stderr bytes.Buffer
	exitCode := -1
	runMain([]string{"dla"}, io.Discard, &stderr, func(code int) { exitCode = code })
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "boom")
}

func TestExecuteVersionFlag(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })
	Version = "9.9.9"

	var stdout bytes.Buffer
	require.NoError(t, execute([]string{"dla", "--version"}, &stdout, io.Discard))
	assert.Equal(t, "9.9.9\n", stdout.String())
}
