package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/vmunix/arrimport/internal/importer"
	"github.com/vmunix/arrimport/internal/radarr"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// terminalPrompter asks run questions on stdin/stdout.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (p *terminalPrompter) readLine() string {
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// Continue implements the 3-way issue policy prompt.
func (p *terminalPrompter) Continue(reason string) importer.Decision {
	for {
		fmt.Fprintf(p.out, "%s Continue? [Y/n/a]: ", reason)
		switch strings.ToLower(p.readLine()) {
		case "", "y", "yes":
			return importer.DecisionYes
		case "n", "no", "q", "quit":
			return importer.DecisionNo
		case "a", "always":
			return importer.DecisionAlways
		}
	}
}

// ConfirmAdd asks before each add; Enter means yes.
func (p *terminalPrompter) ConfirmAdd(title string, year int, tmdbID int64) importer.Decision {
	for {
		fmt.Fprintf(p.out, "Add '%s (%d)' tmdb:%d? [Y/n/a]: ", title, year, tmdbID)
		switch strings.ToLower(p.readLine()) {
		case "", "y", "yes":
			return importer.DecisionYes
		case "n", "no", "s", "skip":
			return importer.DecisionNo
		case "a", "all", "always":
			return importer.DecisionAlways
		}
	}
}

// Choose presents ambiguous candidates; Enter means skip.
func (p *terminalPrompter) Choose(term string, candidates []radarr.Movie) importer.Choice {
	fmt.Fprintf(p.out, "\nMultiple matches for %q:\n", term)

	rows := make([]table.Row, 0, len(candidates))
	for i, m := range candidates {
		rows = append(rows, table.Row{i, m.Title, m.Year, m.TMDBID})
	}
	fmt.Fprintln(p.out, renderTable(table.Row{"#", "TITLE", "YEAR", "TMDB"}, rows, 1, 3, 4))
	fmt.Fprintln(p.out, "[Enter]=skip   0..N=pick   a=always pick first   q=quit")

	for {
		fmt.Fprint(p.out, "Choose [Enter=skip]: ")
		ans := strings.ToLower(p.readLine())
		switch ans {
		case "", "s", "skip":
			return importer.Choice{Kind: importer.ChoiceSkip}
		case "q", "quit":
			return importer.Choice{Kind: importer.ChoiceAbort}
		case "a":
			return importer.Choice{Kind: importer.ChoiceAlways}
		}
		if i, err := strconv.Atoi(ans); err == nil && i >= 0 && i < len(candidates) {
			return importer.Choice{Kind: importer.ChoicePick, Index: i}
		}
		fmt.Fprintln(p.out, "Invalid choice.")
	}
}

// autoPrompter answers every prompt with its default, for non-interactive runs.
type autoPrompter struct{}

func (autoPrompter) Continue(string) importer.Decision { return importer.DecisionYes }
func (autoPrompter) ConfirmAdd(string, int, int64) importer.Decision {
	return importer.DecisionYes
}
func (autoPrompter) Choose(string, []radarr.Movie) importer.Choice {
	return importer.Choice{Kind: importer.ChoiceSkip}
}

// promptYesNo shows a yes/no question with a default answer.
func promptYesNo(in *bufio.Reader, label string, defaultYes bool) bool {
	suffix := "[Y/n]"
	if !defaultYes {
		suffix = "[y/N]"
	}
	for {
		fmt.Printf("%s %s: ", label, suffix)
		line, _ := in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultYes
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

// promptWithDefault shows a prompt with the default value in brackets.
func promptWithDefault(in *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultVal
	}
	return line
}

// promptIndex prompts for a list index in [0, n).
func promptIndex(in *bufio.Reader, label string, n int) int {
	for {
		fmt.Printf("Select %s [0-%d]: ", label, n-1)
		line, _ := in.ReadString('\n')
		if i, err := strconv.Atoi(strings.TrimSpace(line)); err == nil && i >= 0 && i < n {
			return i
		}
		fmt.Println("Invalid selection.")
	}
}
