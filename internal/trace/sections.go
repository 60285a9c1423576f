package trace

import (
	"errors"
	"fmt"
	"strings"
)

const sectionWidth = 80

func header(title string) string {
	bar := strings.Repeat("=", sectionWidth)
	return fmt.Sprintf("%s\n%s\n%s\n\n", bar, title, bar)
}

func footer() string {
	bar := strings.Repeat("=", sectionWidth)
	return fmt.Sprintf("\n%s\nEND OF TRACE\n%s\n", bar, bar)
}

func errorChainHeader() string {
	return "ERROR CHAIN\n" + strings.Repeat("-", sectionWidth) + "\n"
}

// formatErrorChain walks err's Unwrap chain, one numbered line per layer,
// mirroring the Rust original's std::error::Error::source() walk.
func formatErrorChain(err error) string {
	var b strings.Builder
	n := 1
	for current := err; current != nil; {
		fmt.Fprintf(&b, "%d. %s\n", n, current.Error())
		n++
		current = errors.Unwrap(current)
	}
	return b.String()
}
