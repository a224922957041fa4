package document

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// sharedLineRuns diffs two texts line by line and reports how many whole
// lines they share at the start and at the end. The counts are
// conservative: a partial trailing line never counts, so callers may
// retokenize slightly more than the minimal window but never less.
func sharedLineRuns(oldText, newText string) (lead, trail int) {
	dmp := diffmatchpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(c1, c2, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	if len(diffs) == 0 {
		return 0, 0
	}
	if diffs[0].Type == diffmatchpatch.DiffEqual {
		lead = wholeLines(diffs[0].Text)
	}
	if last := diffs[len(diffs)-1]; len(diffs) > 1 && last.Type == diffmatchpatch.DiffEqual {
		trail = wholeLines(last.Text)
	}
	return lead, trail
}

// wholeLines counts the lines in a diff chunk. Chunks are unions of
// source lines, each newline-terminated except a text's final line.
func wholeLines(chunk string) int {
	if chunk == "" {
		return 0
	}
	n := strings.Count(chunk, "\n")
	if !strings.HasSuffix(chunk, "\n") {
		n++
	}
	return n
}
