package ui

import "os"

// IsInteractive checks if stdout is a terminal. Used to avoid prompting or
// opening TUIs when output is piped.
func IsInteractive() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
