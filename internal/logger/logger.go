package logger

import (
	"fmt"
)

// ANSI color codes. Output is plain text plus colors; callers never need to
// format anything beyond the message itself.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func line(color, symbol, tag, msg string) {
	fmt.Printf("%s%s%s %s[%s]%s %s\n", color, symbol, reset, bold, tag, reset, msg)
}

// Info prints a neutral progress message.
func Info(tag, msg string) {
	line(cyan, "•", tag, msg)
}

// Success prints a completed-step message.
func Success(tag, msg string) {
	line(green, "✓", tag, msg)
}

// Warn prints a non-fatal problem.
func Warn(tag, msg string) {
	line(yellow, "!", tag, msg)
}

// Error prints a failure.
func Error(tag, msg string) {
	line(red, "✗", tag, msg)
}

// Banner prints the startup header with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("\n%s%s  gp-tracker %s%s\n", bold, cyan, version, reset)
	fmt.Printf("%s  bank & goal valuation engine%s\n\n", dim, reset)
}

// Section prints a titled divider for grouped stats output.
func Section(title string) {
	fmt.Printf("\n%s── %s ──%s\n", bold, title, reset)
}

// Stats prints one aligned key/value stat line under a Section.
func Stats(label string, value int) {
	fmt.Printf("   %-18s %d\n", label, value)
}

// Server prints the listen address once the HTTP server is up.
func Server(addr string) {
	fmt.Printf("%s➜%s %s[Server]%s Listening on %shttp://%s%s\n", green, reset, bold, reset, cyan, addr, reset)
}
