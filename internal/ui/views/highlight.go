package views

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initAlgo sync.Once

// Highlighter marks the characters of a name that match the typed query.
// It only decorates text; list order always stays as the server sent it.
type Highlighter struct {
	style lipgloss.Style
	slab  *util.Slab
}

// NewHighlighter returns a highlighter rendering matches with style.
func NewHighlighter(style lipgloss.Style) *Highlighter {
	initAlgo.Do(func() { algo.Init("default") })
	return &Highlighter{style: style, slab: util.MakeSlab(100*1024, 2048)}
}

// Positions returns the rune offsets of text matched by pattern, or nil
// when it does not match.
func (h *Highlighter) Positions(text, pattern string) []int {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || text == "" {
		return nil
	}
	chars := util.ToChars([]byte(text))
	res, pos := algo.FuzzyMatchV2(false, true, true, &chars, []rune(strings.ToLower(pattern)), true, h.slab)
	if res.Start < 0 || pos == nil {
		return nil
	}
	return *pos
}

// Render returns text with matched runes styled.
func (h *Highlighter) Render(text, pattern string, base lipgloss.Style) string {
	pos := h.Positions(text, pattern)
	if len(pos) == 0 {
		return base.Render(text)
	}
	hit := make(map[int]bool, len(pos))
	for _, p := range pos {
		hit[p] = true
	}

	var b strings.Builder
	var run []rune
	runHit := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runHit {
			b.WriteString(h.style.Inherit(base).Render(string(run)))
		} else {
			b.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for i, r := range []rune(text) {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
