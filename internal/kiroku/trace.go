package kiroku

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// captureTrace runs the configured build command in the package directory
// and returns its stdout both as ordered lines and as the raw bytes.
// The trace is captured, never streamed: stdout is the sole source of
// truth for recovering the compiler and linker invocations. A non-zero
// exit from the build tool is fatal; no partial trace is salvaged.
func captureTrace(execCtx *Executor, quiet bool) ([]string, []byte, error) {
	if len(buildCommand) == 0 {
		return nil, nil, fmt.Errorf("build command is empty")
	}

	cmd := exec.Command(buildCommand[0], buildCommand[1:]...)
	cmd.Dir = packageDir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	stop := startSpinner(quiet, strings.Join(buildCommand, " "))
	err := execCtx.Run(cmd)
	stop()
	if err != nil {
		return nil, nil, fmt.Errorf("build command failed: %w", err)
	}

	raw := out.Bytes()
	return splitTraceLines(raw), raw, nil
}

// splitTraceLines splits a captured trace into lines. swiftc invocations
// routinely exceed bufio's default token size, so the scanner buffer is
// raised to 1 MiB.
func splitTraceLines(raw []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

// startSpinner shows an indeterminate spinner on stderr while the build
// runs. Returns a stop function. No-op when quiet or not a TTY.
func startSpinner(quiet bool, desc string) func() {
	if quiet || !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		bar.Finish()
	}
}
