package cmd

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// executeMu serialises TestExecute. The same command can be shared by parallel tests
// and os.Stdout and os.Stderr are process wide.
var executeMu sync.Mutex //nolint:gochecknoglobals // guards process wide state

// TestExecute runs command with args and returns everything it printed, be it
// to the command's writers (cmd.Heading, cmd.Item, ...) or directly to os.Stdout and os.Stderr.
// The error is the one returned by the command, e.g. from a context's RunE.
func TestExecute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()

	executeMu.Lock()
	defer executeMu.Unlock()

	out := &syncBuffer{}
	command.SetOut(out)
	command.SetErr(out)
	command.SetArgs(args)

	var cmdErr error

	captureOS(t, out, func() {
		_, cmdErr = command.ExecuteC()
	})

	return out.String(), cmdErr
}

// captureOS redirects os.Stdout and os.Stderr into w while run is executed.
// The pipes are drained concurrently, so commands printing a lot do not block.
func captureOS(t *testing.T, w io.Writer, run func()) {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr
	defer func() { os.Stdout, os.Stderr = stdout, stderr }()

	rOut, wOut, err := os.Pipe()
	require.NoError(t, err)
	rErr, wErr, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = wOut, wErr

	wg := sync.WaitGroup{}
	for _, r := range []*os.File{rOut, rErr} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = io.Copy(w, r)
			_ = r.Close()
		}()
	}

	run()

	require.NoError(t, wOut.Close())
	require.NoError(t, wErr.Close())
	wg.Wait()
}

// syncBuffer is written to by the command and both pipe readers at the same time.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p) //nolint:wrapcheck // bytes.Buffer does not fail
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
