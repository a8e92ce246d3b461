package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/runtime"
)

// setupTestContext points the shared command context at an in-memory
// database for the duration of a test.
func setupTestContext(t *testing.T) *runtime.Context {
	t.Helper()
	t.Setenv("DOSEWATCH_DATABASE", ":memory:")

	opts := runtime.DefaultOptions()
	opts.ColorMode = output.ColorNever
	testCtx, err := runtime.New(opts)
	require.NoError(t, err)
	testCtx.Formatter.Writer = io.Discard

	prev := ctx
	ctx = testCtx
	t.Cleanup(func() {
		ctx = prev
		testCtx.Close()
	})
	return testCtx
}
