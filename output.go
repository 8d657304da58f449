package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var renderer = lipgloss.NewRenderer(os.Stderr)
var stdoutRenderer = lipgloss.NewRenderer(os.Stdout)

var (
	// Stdout styles for the config report.
	dimStyle   = stdoutRenderer.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = stdoutRenderer.NewStyle().Foreground(lipgloss.Color("11"))
)

var (
	errorStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))  // red
	warnStyle  = renderer.NewStyle().Foreground(lipgloss.Color("11"))            // yellow
	infoStyle  = renderer.NewStyle().Foreground(lipgloss.Color("10"))            // green
	hintStyle  = renderer.NewStyle().Foreground(lipgloss.Color("8"))             // dim/gray
	fileStyle  = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // blue
)

func errorf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(os.Stderr, errorStyle.Render("tidygate:")+" "+msg)
}

func warnf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(os.Stderr, warnStyle.Render("tidygate:")+" "+msg)
}

func infof(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(os.Stderr, infoStyle.Render("tidygate:")+" "+msg)
}

func hintf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(os.Stderr, hintStyle.Render("  "+msg))
}

func bell() {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprint(os.Stderr, "\a")
	}
}

// logLevel controls the debug channel. Debug lines are off unless
// --verbose is passed or TIDYGATE_DEBUG is set in the environment.
var logLevel = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelWarn)
	if os.Getenv("TIDYGATE_DEBUG") != "" {
		v.Set(slog.LevelDebug)
	}
	return v
}()

var logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
	Level:   logLevel,
	NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
}))

func debugf(msg string, args ...any) {
	logger.Debug(msg, args...)
}
