// Package segment splits source text into ordered explainable units.
// Segmentation is purely lexical: it tracks indentation, brackets, and
// comment markers, but never parses semantics. It is total over its input;
// text that defeats the language heuristics degrades to single-line opaque
// units instead of failing.
package segment

import (
	"strings"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure Segmenter implements explainer.Segmenter.
var _ explainer.Segmenter = (*Segmenter)(nil)

// Segmenter splits code into units using per-language boundary rules.
type Segmenter struct{}

// NewSegmenter creates a new Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment splits text into ordered units. Non-empty text yields at least
// one unit; all-whitespace text yields an empty sequence.
func (s *Segmenter) Segment(text string, lang explainer.Language) []explainer.CodeUnit {
	lines := splitLines(text)
	if allBlank(lines) {
		return nil
	}

	switch lang {
	case explainer.Python:
		return segmentIndent(lines, explainer.Python)
	case explainer.JavaScript, explainer.Java, explainer.CPP:
		return segmentBraces(lines)
	default:
		return segmentIndent(lines, explainer.Unknown)
	}
}

// splitLines splits text into lines without the trailing newline artifact.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// indentWidth measures leading whitespace; a tab counts as 4 columns.
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

// forEachCodeByte calls fn with the index of each byte outside string and
// character literals. Escapes inside literals are honored.
func forEachCodeByte(line string, fn func(i int, b byte) bool) {
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		b := line[i]
		if escaped {
			escaped = false
			continue
		}
		if quote != 0 {
			if b == '\\' {
				escaped = true
			} else if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '\'', '"', '`':
			quote = b
			continue
		}
		if !fn(i, b) {
			return
		}
	}
}

// bracketDelta returns net open-minus-close counts outside literals.
func bracketDelta(line string, lang explainer.Language) (round, square, curly int) {
	forEachCodeByte(line, func(i int, b byte) bool {
		if isCommentStart(line, i, lang) {
			return false
		}
		switch b {
		case '(':
			round++
		case ')':
			round--
		case '[':
			square++
		case ']':
			square--
		case '{':
			curly++
		case '}':
			curly--
		}
		return true
	})
	return round, square, curly
}

// isCommentStart reports whether a line comment begins at index i.
func isCommentStart(line string, i int, lang explainer.Language) bool {
	switch lang {
	case explainer.Python:
		return line[i] == '#'
	case explainer.JavaScript, explainer.Java, explainer.CPP:
		return line[i] == '/' && i+1 < len(line) && line[i+1] == '/'
	default:
		if line[i] == '#' {
			return true
		}
		return line[i] == '/' && i+1 < len(line) && line[i+1] == '/'
	}
}

// stripLineComment removes a trailing line comment outside literals.
func stripLineComment(line string, lang explainer.Language) string {
	cut := -1
	forEachCodeByte(line, func(i int, b byte) bool {
		if isCommentStart(line, i, lang) {
			cut = i
			return false
		}
		return true
	})
	if cut >= 0 {
		return strings.TrimRight(line[:cut], " \t")
	}
	return strings.TrimRight(line, " \t")
}

// isCommentOnly reports whether the trimmed line carries only commentary.
func isCommentOnly(trimmed string, lang explainer.Language) bool {
	switch lang {
	case explainer.Python:
		return strings.HasPrefix(trimmed, "#")
	case explainer.JavaScript, explainer.Java, explainer.CPP:
		return strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") ||
			strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "*/")
	default:
		return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
	}
}

// continuationSpan finds the last line index of the logical statement
// starting at line i, coalescing while brackets stay open or an explicit
// continuation marker ends the line. The second return value is false when
// the statement never closes before EOF.
func continuationSpan(lines []string, i int, lang explainer.Language) (int, bool) {
	round, square, curly := 0, 0, 0
	j := i
	for {
		r, s, c := bracketDelta(lines[j], lang)
		round += r
		square += s
		if lang == explainer.Python {
			// Python braces delimit literals, not blocks, so they hold a
			// statement open. Elsewhere braces are block delimiters.
			curly += c
		}
		stripped := stripLineComment(lines[j], lang)
		backslash := strings.HasSuffix(stripped, "\\")

		open := round > 0 || square > 0 || curly > 0
		if !open && !backslash {
			return j, true
		}
		if round < 0 || square < 0 || curly < 0 {
			// More closers than openers; treat as balanced rather than guess.
			return j, true
		}
		if j+1 >= len(lines) {
			return j, false
		}
		j++
	}
}

// emitOpaque emits lines i..j as single-line opaque units.
func emitOpaque(units []explainer.CodeUnit, lines []string, i, j, depth int) []explainer.CodeUnit {
	for k := i; k <= j; k++ {
		if strings.TrimSpace(lines[k]) == "" {
			units = append(units, explainer.CodeUnit{
				StartLine: k + 1, EndLine: k + 1, Text: lines[k], Depth: depth, Kind: explainer.KindBlank,
			})
			continue
		}
		units = append(units, explainer.CodeUnit{
			StartLine: k + 1, EndLine: k + 1, Text: lines[k], Depth: depth, Kind: explainer.KindOpaque,
		})
	}
	return units
}

// segmentIndent handles indentation-significant and generic languages.
// Depth comes from an indent stack; block headers are lines whose logical
// text ends with ":" (or "{" in generic mode).
func segmentIndent(lines []string, lang explainer.Language) []explainer.CodeUnit {
	var units []explainer.CodeUnit

	// Stack of indent widths; depth is the number of enclosing indents.
	stack := []int{0}

	i := 0
	for i < len(lines) {
		raw := lines[i]
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			units = append(units, explainer.CodeUnit{
				StartLine: i + 1, EndLine: i + 1, Text: raw,
				Depth: len(stack) - 1, Kind: explainer.KindBlank,
			})
			i++
			continue
		}

		ind := indentWidth(raw)
		for len(stack) > 1 && ind < stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
		}
		if ind > stack[len(stack)-1] {
			stack = append(stack, ind)
		}
		depth := len(stack) - 1

		if isCommentOnly(trimmed, lang) {
			units = append(units, explainer.CodeUnit{
				StartLine: i + 1, EndLine: i + 1, Text: raw,
				Depth: depth, Kind: explainer.KindComment,
			})
			i++
			continue
		}

		j, closed := continuationSpan(lines, i, lang)
		if !closed {
			units = emitOpaque(units, lines, i, j, depth)
			i = j + 1
			continue
		}

		text := strings.Join(lines[i:j+1], "\n")
		logical := stripLineComment(lines[j], lang)

		kind := explainer.KindStatement
		if strings.HasSuffix(logical, ":") {
			kind = explainer.KindBlockHeader
		}
		if lang == explainer.Unknown && strings.HasSuffix(logical, "{") {
			kind = explainer.KindBlockHeader
		}

		units = append(units, explainer.CodeUnit{
			StartLine: i + 1, EndLine: j + 1, Text: text,
			Depth: depth, Kind: kind,
		})
		i = j + 1
	}

	return units
}

// segmentBraces handles C-family languages. Depth comes from net curly
// brace counts; block headers are lines whose logical text ends with "{"
// or a label colon (case, default, access specifiers).
func segmentBraces(lines []string) []explainer.CodeUnit {
	var units []explainer.CodeUnit
	lang := explainer.CPP // marker semantics shared by the C family

	depth := 0
	i := 0
	for i < len(lines) {
		raw := lines[i]
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			units = append(units, explainer.CodeUnit{
				StartLine: i + 1, EndLine: i + 1, Text: raw,
				Depth: depth, Kind: explainer.KindBlank,
			})
			i++
			continue
		}

		// Block comments span until the closing marker.
		if strings.HasPrefix(trimmed, "/*") && !strings.Contains(trimmed, "*/") {
			j := i
			for j+1 < len(lines) && !strings.Contains(lines[j], "*/") {
				j++
			}
			units = append(units, explainer.CodeUnit{
				StartLine: i + 1, EndLine: j + 1, Text: strings.Join(lines[i:j+1], "\n"),
				Depth: depth, Kind: explainer.KindComment,
			})
			i = j + 1
			continue
		}

		if isCommentOnly(trimmed, lang) {
			units = append(units, explainer.CodeUnit{
				StartLine: i + 1, EndLine: i + 1, Text: raw,
				Depth: depth, Kind: explainer.KindComment,
			})
			i++
			continue
		}

		j, closed := continuationSpan(lines, i, lang)
		if !closed {
			units = emitOpaque(units, lines, i, j, depth)
			i = j + 1
			continue
		}

		text := strings.Join(lines[i:j+1], "\n")

		// Leading closers shift the unit out one level before any opens.
		lead := 0
		for _, r := range trimmed {
			if r == '}' || r == ' ' || r == '\t' || r == ';' {
				if r == '}' {
					lead++
				}
				continue
			}
			break
		}

		unitDepth := depth - lead
		if unitDepth < 0 {
			unitDepth = 0
		}

		var net int
		for k := i; k <= j; k++ {
			_, _, c := bracketDelta(lines[k], lang)
			net += c
		}

		logical := stripLineComment(lines[j], lang)
		kind := explainer.KindStatement
		switch {
		case strings.HasSuffix(logical, "{"):
			kind = explainer.KindBlockHeader
		case strings.HasSuffix(logical, ":") && isLabel(trimmed):
			kind = explainer.KindBlockHeader
		}

		depth += net
		if depth < 0 {
			depth = 0
		}

		units = append(units, explainer.CodeUnit{
			StartLine: i + 1, EndLine: j + 1, Text: text,
			Depth: unitDepth, Kind: kind,
		})
		i = j + 1
	}

	return units
}

// isLabel reports whether a colon-terminated line is a label-style header.
func isLabel(trimmed string) bool {
	for _, prefix := range []string{"case ", "default:", "public:", "private:", "protected:"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
