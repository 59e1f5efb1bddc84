// Package input resolves query or plan text from a file argument,
// stdin, or an interactive paste.
package input

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Read returns the content named by input: a file path, "-" for
// stdin, or empty for an interactive prompt. The kind string names
// what the prompt asks for ("SQL query", "EXPLAIN output").
func Read(input string, kind string) (string, error) {
	data, err := readRaw(input, kind)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("empty %s input", kind)
	}

	return string(data), nil
}

func readRaw(input string, kind string) ([]byte, error) {
	switch input {
	case "":
		return readInteractive(kind)
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(input)
	}
}

func readInteractive(kind string) ([]byte, error) {
	fmt.Printf("Paste your %s", kind)
	if runtime.GOOS == "windows" {
		fmt.Print(" (Ctrl+Z, Enter to submit)\n")
	} else {
		fmt.Print(" (Ctrl+D to submit)\n")
	}

	return io.ReadAll(os.Stdin)
}
