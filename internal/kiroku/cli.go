package kiroku

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gookit/color"
)

// printHelp prints the commands table
func printHelp() {
	colSuccess.Println("Usage: kiroku <command> [arguments]")
	colSuccess.Println("Run 'kiroku <command> -h' for command options")
	fmt.Println()
	color.Info.Println("Available Commands:")

	type cmdInfo struct {
		Cmd  string
		Args string
		Desc string
	}
	cmds := []cmdInfo{
		{"record, r", "[-quiet] [-no-archive]", "Build the action and generate the build script"},
		{"extract, x", "[-script] <trace|->", "Recover compile/link commands from a saved trace"},
		{"log, l", "[trace]", "List archived traces, or view one"},
		{"publish, p", "[-list]", "Upload script and trace to the artifact mirror"},
		{"version, --version", "", "Version information"},
	}

	// Find the longest usage string to size the first column.
	maxLen := 0
	for _, c := range cmds {
		length := len(c.Cmd) + len(c.Args)
		if c.Args != "" {
			length++
		}
		if length > maxLen {
			maxLen = length
		}
	}
	columnWidth := maxLen + 4

	for _, c := range cmds {
		var usageString string
		if c.Args != "" {
			usageString = fmt.Sprintf("  %s %s", c.Cmd, c.Args)
		} else {
			usageString = fmt.Sprintf("  %s", c.Cmd)
		}

		fmt.Print("  ")
		color.Bold.Print(c.Cmd)
		if c.Args != "" {
			fmt.Print(" ")
			color.Cyan.Print(c.Args)
		}

		pad := columnWidth - len(usageString)
		if pad < 1 {
			pad = 1
		}
		fmt.Print(strings.Repeat(" ", pad))
		color.Info.Println(c.Desc)
	}

	fmt.Println()
}

// Main is the CLI entrypoint for cmd root.
func Main() {
	// 1. CONTEXT AND SIGNAL SETUP
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// First signal cancels the context so the external build's process
	// group is killed; a second signal forces immediate exit.
	go func() {
		select {
		case sig := <-sigs:
			colArrow.Print("\n-> ")
			color.Danger.Printf("Received %v. Cancelling process gracefully\n", sig)
			cancel()
			select {
			case <-sigs:
				colArrow.Print("\n-> ")
				color.Danger.Println("Second interrupt received. Forcing immediate exit.")
				os.Exit(130)
			case <-time.After(2 * time.Second):
				colArrow.Print("\n-> ")
				color.Danger.Println("Graceful shutdown timeout. Exiting.")
				os.Exit(130)
			}
		case <-ctx.Done():
		}
	}()

	if len(os.Args) < 2 {
		printHelp()
		return
	}

	// 2. CONFIGURATION
	configPath := ConfigFile
	if alt := os.Getenv("KIROKU_CONF"); alt != "" {
		configPath = alt
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", configPath, err)
	}
	initConfig(cfg)

	UserExec = NewExecutor(ctx)

	// 3. COMMAND DISPATCH
	cmd := os.Args[1]
	args := os.Args[2:]

	var cmdErr error
	switch cmd {
	case "record", "r":
		cmdErr = handleRecordCommand(args, UserExec)
	case "extract", "x":
		cmdErr = handleExtractCommand(args)
	case "log", "l":
		cmdErr = handleLogCommand(args)
	case "publish", "p":
		cmdErr = handlePublishCommand(args, cfg, UserExec)
	case "version", "--version":
		fmt.Printf("kiroku %s (%s, built %s)\n", version, arch, buildDate)
	case "help", "-h", "--help":
		printHelp()
	default:
		fmt.Println("Unknown command:", cmd)
		printHelp()
		os.Exit(1)
	}

	if cmdErr != nil {
		if errors.Is(cmdErr, errMissingCommand) {
			fmt.Fprintln(os.Stderr, "Cannot generate build script: compile or link command not found")
		} else {
			colError.Printf("Error: %v\n", cmdErr)
		}
		os.Exit(1)
	}
}
