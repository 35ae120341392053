package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/numwordle/internal/app"
	"example.com/numwordle/internal/cli"
	"example.com/numwordle/internal/console"
)

func TestRun_Help(t *testing.T) {
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"-h"}, strings.NewReader(""), &out, &errOut)

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_OneDigitGameIsAlwaysWon(t *testing.T) {
	var in strings.Builder
	for d := 0; d <= 9; d++ {
		fmt.Fprintf(&in, "%d\n", d)
	}
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"-lang", "1", "-digits", "1"}, strings.NewReader(in.String()), &out, &errOut)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "You have won! The number was ")
}

func TestRun_BadFlags(t *testing.T) {
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"-digits", "42"}, strings.NewReader(""), &out, &errOut)

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "err=%v", err)
	assert.Equal(t, 2, exitCode(err))
}

func TestRun_EndOfInput(t *testing.T) {
	var out, errOut bytes.Buffer

	err := run(context.Background(), []string{"-lang", "1", "-digits", "4"}, strings.NewReader(""), &out, &errOut)

	require.ErrorIs(t, err, console.ErrInputClosed)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out.String(), "Input closed, game over")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(&cli.ExitError{Code: 2, Message: "bad"}))
	assert.Equal(t, exitInterrupted, exitCode(fmt.Errorf("%w: %w", app.ErrAborted, context.Canceled)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

// flakyWriter panics on its first n writes and records the rest.
type flakyWriter struct {
	n   int
	buf bytes.Buffer
}

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.n > 0 {
		w.n--
		panic("stdout vanished")
	}
	return w.buf.Write(p)
}

func TestRun_PanicInsideGame(t *testing.T) {
	out := &flakyWriter{n: 1}
	var errOut bytes.Buffer

	err := run(context.Background(), []string{"-lang", "1", "-digits", "1"}, strings.NewReader(""), out, &errOut)

	require.ErrorIs(t, err, app.ErrUnexpected)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out.buf.String(), "Some error occurred: unexpected failure: stdout vanished")
}

func TestRun_PanicEscapingTheApp(t *testing.T) {
	// the second panic hits the app's own error report and reaches run
	out := &flakyWriter{n: 2}
	var errOut bytes.Buffer

	err := run(context.Background(), []string{"-lang", "4", "-digits", "1"}, strings.NewReader(""), out, &errOut)

	require.ErrorIs(t, err, app.ErrUnexpected)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out.buf.String(), "Some error occurred: unexpected failure: stdout vanished")
}
