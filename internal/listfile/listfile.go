// Package listfile reads flat movie lists: one title per line, optionally
// suffixed with a parenthesized release year.
package listfile

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// yearSuffixPattern matches a trailing "(YYYY)" with optional trailing whitespace.
var yearSuffixPattern = regexp.MustCompile(`\((\d{4})\)\s*$`)

// ParseTitleYear splits "Title (YYYY)" into the title text and the year.
// Lines without a trailing year return year 0 and ok false. Any input is
// accepted; there are no error cases.
func ParseTitleYear(line string) (title string, year int, ok bool) {
	m := yearSuffixPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return strings.TrimSpace(line), 0, false
	}
	y, err := strconv.Atoi(line[m[2]:m[3]])
	if err != nil {
		return strings.TrimSpace(line), 0, false
	}
	return strings.TrimSpace(line[:m[0]]), y, true
}

// Read loads the input file and returns its entries in order, dropping blank
// lines and lines starting with '#'.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return entries, nil
}
