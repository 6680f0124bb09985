package kiroku

import (
	"errors"
	"flag"
	"fmt"
)

// errMissingCommand reports that the trace did not contain both expected
// invocations. The caller prints the diagnostic and exits 1.
var errMissingCommand = errors.New("compile or link command not found in build trace")

// generateAndInstall runs the extraction, rendering, and installation
// stages against an already captured trace. Shared by 'record' and
// 'extract -script'. No script is written unless both commands are found.
func generateAndInstall(lines []string, quiet bool) error {
	ext := NewExtractor().Extract(lines)
	if !ext.CompileFound || !ext.LinkFound {
		return errMissingCommand
	}

	if !quiet {
		arrow("Generated compile command: %s", ext.Compile)
		arrow("Generated link command: %s", ext.Link)
	}

	body := renderScript(ext.Compile, ext.Link)
	if err := installScript(scriptPath, body, scriptMode); err != nil {
		return err
	}

	if !quiet {
		arrow("Build script written to %s", scriptPath)
	}
	return nil
}

// handleRecordCommand drives the full pipeline: build, extract, generate,
// install, archive. Strictly sequential, single pass, every failure is
// terminal for the run.
func handleRecordCommand(args []string, execCtx *Executor) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	quiet := fs.Bool("quiet", false, "suppress status output")
	noArchive := fs.Bool("no-archive", false, "do not archive the raw trace")
	fs.Parse(args)

	if !*quiet {
		arrow("Building action in %s", packageDir)
	}

	lines, raw, err := captureTrace(execCtx, *quiet)
	if err != nil {
		return err
	}
	if !*quiet {
		arrow("Action built. Decoding compile and link commands")
	}

	if err := generateAndInstall(lines, *quiet); err != nil {
		return err
	}

	if !*noArchive {
		path, err := archiveTrace(raw)
		if err != nil {
			// The script is already installed; a failed archive write
			// should not fail the run.
			colWarn.Printf("Warning: failed to archive trace: %v\n", err)
		} else if !*quiet {
			arrow("Trace archived to %s", path)
		}
	}

	return nil
}

// handleExtractCommand recovers the commands from a saved trace instead of
// driving a fresh build. Useful for testing recognition prefixes against
// traces from other tool versions.
func handleExtractCommand(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	script := fs.Bool("script", false, "also render and install the build script")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: kiroku extract [-script] <trace-file|->")
	}

	raw, err := readTrace(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}
	lines := splitTraceLines(raw)

	if *script {
		return generateAndInstall(lines, false)
	}

	ext := NewExtractor().Extract(lines)
	if !ext.CompileFound || !ext.LinkFound {
		return errMissingCommand
	}
	arrow("Compile command: %s", ext.Compile)
	arrow("Link command: %s", ext.Link)
	return nil
}
