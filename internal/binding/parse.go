package binding

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	descriptionMarker = " # "
	maxLineBytes      = 1024 * 1024
)

// Parse reads one binding per line in the form
//
//	<keys> <output> [# <description>]
//
// Lines without a space, with empty keys or with empty output are skipped.
func Parse(r io.Reader) ([]Binding, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	bindings := make([]Binding, 0, 16)
	for scanner.Scan() {
		if b, ok := ParseLine(scanner.Text()); ok {
			bindings = append(bindings, b)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan bindings: %w", err)
	}
	return bindings, nil
}

// ParseLine parses a single input line. The key sequence ends at the first
// space; the description, when present, starts after the first " # " of the
// remainder.
func ParseLine(line string) (Binding, bool) {
	line = strings.TrimSuffix(line, "\r")
	keys, rest, ok := strings.Cut(line, " ")
	if !ok || keys == "" {
		return Binding{}, false
	}
	output, description := rest, ""
	if out, desc, found := strings.Cut(rest, descriptionMarker); found {
		output = strings.TrimRight(out, " ")
		description = strings.TrimSpace(desc)
	}
	if output == "" {
		return Binding{}, false
	}
	return Binding{Keys: keys, Output: output, Description: description}, true
}
