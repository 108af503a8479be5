package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContextLines is the number of unchanged lines kept around a change.
const DefaultContextLines = 3

// LineType classifies a diff line.
type LineType string

const (
	LineAdd       LineType = "add"
	LineRemove    LineType = "remove"
	LineUnchanged LineType = "unchanged"
)

// Line is one line of output. Removed lines carry only an old line number,
// added lines only a new one.
type Line struct {
	Type          LineType `json:"type"`
	Content       string   `json:"content"`
	OldLineNumber int      `json:"oldLineNumber,omitempty"`
	NewLineNumber int      `json:"newLineNumber,omitempty"`
}

// Hunk is a contiguous region of changes with context. Starts are 1-based;
// a zero count start points at the line preceding the insertion.
type Hunk struct {
	OldStart int    `json:"oldStart"`
	OldCount int    `json:"oldCount"`
	NewStart int    `json:"newStart"`
	NewCount int    `json:"newCount"`
	Lines    []Line `json:"lines"`
}

// Stats counts lines by type over the whole input.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Unchanged int `json:"unchanged"`
}

// Result is the output of Calculate.
type Result struct {
	Hunks   []Hunk `json:"hunks"`
	Stats   Stats  `json:"stats"`
	HasDiff bool   `json:"hasDiff"`
}

type config struct {
	context int
}

// Option customises Calculate.
type Option func(*config)

// WithContextLines sets how many unchanged lines surround each change.
// Changes separated by at most twice that many unchanged lines share a hunk.
// Negative values are treated as zero.
func WithContextLines(n int) Option {
	return func(c *config) {
		c.context = max(n, 0)
	}
}

// Calculate diffs oldText against newText line by line. Lines compare by
// exact string equality; empty text has no lines.
func Calculate(oldText, newText string, options ...Option) Result {
	cfg := config{context: DefaultContextLines}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	lines := classify(splitLines(oldText), splitLines(newText))

	result := Result{Hunks: []Hunk{}}
	for _, line := range lines {
		switch line.Type {
		case LineAdd:
			result.Stats.Additions++
		case LineRemove:
			result.Stats.Deletions++
		default:
			result.Stats.Unchanged++
		}
	}
	result.HasDiff = result.Stats.Additions+result.Stats.Deletions > 0
	if result.HasDiff {
		result.Hunks = group(lines, cfg.context)
	}
	return result
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// classify matches the two line sequences and numbers every output line.
func classify(oldLines, newLines []string) []Line {
	oldRunes, newRunes, table := encode(oldLines, newLines)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	out := make([]Line, 0, max(len(oldLines), len(newLines)))
	oldNo, newNo := 0, 0
	for _, d := range diffs {
		for _, r := range []rune(d.Text) {
			content := table[decode(r)]
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				oldNo++
				out = append(out, Line{Type: LineRemove, Content: content, OldLineNumber: oldNo})
			case diffmatchpatch.DiffInsert:
				newNo++
				out = append(out, Line{Type: LineAdd, Content: content, NewLineNumber: newNo})
			default:
				oldNo++
				newNo++
				out = append(out, Line{Type: LineUnchanged, Content: content, OldLineNumber: oldNo, NewLineNumber: newNo})
			}
		}
	}
	return out
}

// Each distinct line becomes one rune. The surrogate range cannot survive a
// rune → string → rune round trip, so indices skip over it.
const (
	surrogateStart = 0xD800
	surrogateSpan  = 0x800
)

func encode(oldLines, newLines []string) ([]rune, []rune, []string) {
	index := map[string]int{}
	var table []string
	toRunes := func(lines []string) []rune {
		out := make([]rune, len(lines))
		for i, line := range lines {
			idx, ok := index[line]
			if !ok {
				idx = len(table)
				index[line] = idx
				table = append(table, line)
			}
			out[i] = rune(idx)
			if idx >= surrogateStart {
				out[i] += surrogateSpan
			}
		}
		return out
	}
	return toRunes(oldLines), toRunes(newLines), table
}

func decode(r rune) int {
	idx := int(r)
	if idx >= surrogateStart+surrogateSpan {
		idx -= surrogateSpan
	}
	return idx
}

func group(lines []Line, context int) []Hunk {
	var changes []int
	for i, line := range lines {
		if line.Type != LineUnchanged {
			changes = append(changes, i)
		}
	}

	var hunks []Hunk
	for i := 0; i < len(changes); {
		first, last := changes[i], changes[i]
		j := i + 1
		for j < len(changes) && changes[j]-last-1 <= 2*context {
			last = changes[j]
			j++
		}
		start := max(first-context, 0)
		end := min(last+context+1, len(lines))
		hunks = append(hunks, buildHunk(lines, start, end))
		i = j
	}
	return hunks
}

func buildHunk(lines []Line, start, end int) Hunk {
	oldBefore, newBefore := 0, 0
	for _, line := range lines[:start] {
		if line.Type != LineAdd {
			oldBefore++
		}
		if line.Type != LineRemove {
			newBefore++
		}
	}

	h := Hunk{Lines: append([]Line(nil), lines[start:end]...)}
	for _, line := range h.Lines {
		if line.Type != LineAdd {
			h.OldCount++
		}
		if line.Type != LineRemove {
			h.NewCount++
		}
	}
	h.OldStart = oldBefore
	if h.OldCount > 0 {
		h.OldStart++
	}
	h.NewStart = newBefore
	if h.NewCount > 0 {
		h.NewStart++
	}
	return h
}
