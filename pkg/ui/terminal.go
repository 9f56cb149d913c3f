package ui

import (
	"fmt"
	"sync"
)

// Color functions for terminal output
var (
	Cyan   = colorize("\033[36m%s\033[0m")
	Yellow = colorize("\033[33m%s\033[0m")
	Red    = colorize("\033[31m%s\033[0m")
	Green  = colorize("\033[32m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf(colorString, text)
	}
}

var (
	quietMu   sync.RWMutex
	quietMode bool
)

// SetQuietMode suppresses all output except errors
func SetQuietMode(quiet bool) {
	quietMu.Lock()
	defer quietMu.Unlock()
	quietMode = quiet
}

// IsQuietMode returns whether quiet mode is enabled
func IsQuietMode() bool {
	quietMu.RLock()
	defer quietMu.RUnlock()
	return quietMode
}

// PrintError prints an error message in red; never suppressed
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(Red(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Println(Green(msg))
}

// PrintInfo prints a labeled info line
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Printf("%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Println(Yellow(msg))
}
