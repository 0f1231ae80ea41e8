package common

import (
	"fmt"
	"io"
	"strings"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(w io.Writer, char string, width int) {
	fmt.Fprintln(w, strings.Repeat(char, width))
}

// PrintSeparatorNewline prints a separator with a newline before it
func PrintSeparatorNewline(w io.Writer, char string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(w io.Writer, title string, width int) {
	PrintSeparatorNewline(w, "=", width)
	fmt.Fprintln(w, title)
	PrintSeparator(w, "=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(w io.Writer, message string, width int) {
	PrintSeparatorNewline(w, "=", width)
	fmt.Fprintln(w, message)
	fmt.Fprintln(w, strings.Repeat("=", width)+"\n")
}

// PrintSection opens a box-drawn sub-section
func PrintSection(w io.Writer, title string, width int) {
	fmt.Fprintf(w, "\n┌─ %s\n", title)
	PrintBoxSeparator(w, width-2)
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(w io.Writer, width int) {
	fmt.Fprintln(w, "├"+strings.Repeat("─", width))
}

// PrintBoxLine prints one list line with the right prefix
func PrintBoxLine(w io.Writer, isLast bool, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", BoxPrefix(isLast), fmt.Sprintf(format, args...))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// Truncate shortens ids for table output
func Truncate(s string, n int) string {
	if s == "" {
		return "none"
	}
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
