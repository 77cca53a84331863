//go:build windows

package runner

// fixOutputProcessing is a no-op: console output processing survives raw mode on Windows.
func fixOutputProcessing(int) {}
