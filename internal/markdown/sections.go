package markdown

import (
	"regexp"
	"strings"
)

// headerPattern matches an ATX header: 1-6 '#' characters followed by
// whitespace and text. Deeper nesting and bare '#' lines are body content.
var headerPattern = regexp.MustCompile(`^(#{1,6})\s+(.*\S.*)$`)

// Section is one header-delimited region of a document. Level 0 is the
// synthetic preamble holding content before the first header.
type Section struct {
	Header     string   // header text without the '#' prefix; "" for the preamble
	Level      int      // number of '#' characters; 0 for the preamble
	HeaderLine string   // the verbatim header line; "" for the preamble
	Body       []string // lines after the header, up to the next header
	LineStart  int      // 1-based line of the header (or first preamble line)
	LineEnd    int      // 1-based last body line
}

// Content returns the section body joined with newlines.
func (s Section) Content() string {
	return strings.Join(s.Body, "\n")
}

// Lines returns the section's verbatim line sequence, header included.
func (s Section) Lines() []string {
	if s.Level == 0 {
		return s.Body
	}
	return append([]string{s.HeaderLine}, s.Body...)
}

// Text returns the section's verbatim text, header included.
func (s Section) Text() string {
	return strings.Join(s.Lines(), "\n")
}

// Parse splits text into an ordered section list. Every input line lands in
// exactly one section, so Render(Parse(text)) == text.
func Parse(text string) []Section {
	if text == "" {
		return nil
	}

	var sections []Section
	lines := strings.Split(text, "\n")

	current := Section{LineStart: 1}
	started := false // true once the preamble has at least one line or a header was seen

	flush := func(end int) {
		if !started {
			return
		}
		current.LineEnd = end
		sections = append(sections, current)
	}

	for i, line := range lines {
		lineNo := i + 1
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			flush(lineNo - 1)
			current = Section{
				Header:     m[2],
				Level:      len(m[1]),
				HeaderLine: line,
				LineStart:  lineNo,
			}
			started = true
			continue
		}
		if !started {
			started = true
		}
		current.Body = append(current.Body, line)
	}
	flush(len(lines))

	return sections
}

// Render reassembles sections into document text. It is the inverse of
// Parse for any input produced by Parse.
func Render(sections []Section) string {
	if len(sections) == 0 {
		return ""
	}
	var lines []string
	for _, s := range sections {
		lines = append(lines, s.Lines()...)
	}
	return strings.Join(lines, "\n")
}
