package kiroku

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"
	"github.com/rivo/tview"
	"golang.org/x/term"
)

// handleLogCommand lists archived traces, or shows one in the pager.
func handleLogCommand(args []string) error {
	if len(args) == 0 {
		traces, err := listTraces()
		if err != nil {
			return fmt.Errorf("failed to list traces: %v", err)
		}
		if len(traces) == 0 {
			fmt.Println("No archived traces.")
			return nil
		}
		for _, t := range traces {
			color.Bold.Print(t.Name)
			colInfo.Printf("  %d bytes  %s\n", t.Size, t.Modified.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	// Accept either a bare archive name or a path to any trace file.
	path := args[0]
	if !strings.ContainsRune(path, os.PathSeparator) {
		if candidate := filepath.Join(tracesDir, path); fileExists(candidate) {
			path = candidate
		}
	}

	raw, err := readTrace(path)
	if err != nil {
		return fmt.Errorf("failed to read trace: %w", err)
	}
	return runPager(filepath.Base(path), splitTraceLines(raw))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// runPager displays lines in a scrollable TUI when stdout is a TTY and
// the content does not fit the terminal; otherwise it prints plainly.
func runPager(title string, lines []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	// Short content fits on screen; skip the TUI.
	if _, height, err := term.GetSize(fd); err == nil && len(lines) <= height-2 {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	app := tview.NewApplication()

	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	textView.SetBorder(true).SetTitle(" " + title + " ")

	// Build traces may carry ANSI sequences from the compiler.
	fmt.Fprint(tview.ANSIWriter(textView), strings.Join(lines, "\n"))

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]↑/↓ PgUp/PgDn Home/End scroll, 'q' or Esc quits[white]")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(textView, 0, 1, true).
		AddItem(footer, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlQ:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	if err := app.SetRoot(flex, true).SetFocus(textView).Run(); err != nil {
		return fmt.Errorf("pager execution failed: %w", err)
	}
	return nil
}
