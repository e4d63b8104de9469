package search

import (
	"bufio"
	"fmt"
	"io"

	"github.com/FocuswithJustin/BibleArchive/core/canon"
)

// Lines returns the output lines for res without writing them.
func (p *Plan) Lines(res *Result) []string {
	if !p.Count {
		lines := make([]string, 0, len(res.Hits))
		for _, h := range res.Hits {
			lines = append(lines, h.String())
		}
		return lines
	}

	var lines []string
	for _, t := range res.Chapters {
		if !p.reportable(t) {
			continue
		}
		line := fmt.Sprintf("%s %d: %d", canon.Abbrev(t.Book), t.Chapter, t.Verses)
		if res.WordCount {
			line += fmt.Sprintf(" (word count: %d)", t.Words)
		}
		lines = append(lines, line)
	}
	total := fmt.Sprintf("Total: %d", res.Verses)
	if res.WordCount {
		total += fmt.Sprintf(" (word count: %d)", res.Words)
	}
	return append(lines, total)
}

// reportable applies the threshold. The same value gauges the verse count
// and, in word-count mode, the word count; clearing either is enough.
func (p *Plan) reportable(t ChapterTally) bool {
	if p.Threshold == nil {
		return true
	}
	bar := *p.Threshold
	if t.Verses >= bar {
		return true
	}
	return p.Word != nil && t.Words >= bar
}

// Render writes the lines for res to w.
func (p *Plan) Render(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, line := range p.Lines(res) {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
