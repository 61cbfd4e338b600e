// Package doc reads and writes line-oriented Markdown buffers. The
// orchestration layer owns the mutable []string; transforms take a
// buffer and return a rebuilt one.
package doc

import (
	"bytes"
	"os"
	"strings"
)

// Split breaks raw file bytes into one string per line. CRLF and bare
// CR line endings are normalized to LF and invalid UTF-8 is replaced
// before splitting.
func Split(b []byte) []string {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	b = bytes.ToValidUTF8(b, []byte("�"))
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Join renders lines back to file bytes with a single trailing
// newline.
func Join(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// Load reads path into a line buffer.
func Load(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Split(b), nil
}

// Save writes a line buffer to path.
func Save(path string, lines []string) error {
	return os.WriteFile(path, Join(lines), 0o644)
}
