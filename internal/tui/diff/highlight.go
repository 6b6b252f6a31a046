package diff

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colors source lines by the language of their file. Results
// are cached per file and content.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
	cache     map[string][]string
}

// NewHighlighter returns a Highlighter using the named chroma style.
func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &Highlighter{
		style:     style,
		formatter: formatter,
		cache:     make(map[string][]string),
	}
}

// Lines returns lines colored for path's language, one output per input
// line. Unknown languages and tokenizer failures return the input as is.
func (h *Highlighter) Lines(path string, lines []string) []string {
	if len(lines) == 0 {
		return lines
	}

	code := strings.Join(lines, "\n")
	key := path + "\x00" + code
	if cached, ok := h.cache[key]; ok {
		return cached
	}

	out := h.highlight(path, code, len(lines))
	if out == nil {
		out = lines
	}
	h.cache[key] = out
	return out
}

func (h *Highlighter) highlight(path, code string, n int) []string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil
	}

	// Tokens can span lines; split first so every row gets its own
	// escape sequences.
	split := chroma.SplitTokensIntoLines(iterator.Tokens())
	out := make([]string, 0, n)
	var buf strings.Builder
	for _, tokens := range split {
		if len(out) == n {
			break
		}
		if k := len(tokens) - 1; k >= 0 {
			tokens[k].Value = strings.TrimSuffix(tokens[k].Value, "\n")
		}
		buf.Reset()
		if err := h.formatter.Format(&buf, h.style, chroma.Literator(tokens...)); err != nil {
			return nil
		}
		out = append(out, buf.String())
	}

	for len(out) < n {
		out = append(out, "")
	}
	return out
}
