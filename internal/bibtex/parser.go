package bibtex

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nanalab/paperscan/internal/model"
)

// Parse parses BibTeX content into bibliography entries in file order.
// Text outside @-directives is ignored, as BibTeX treats it as commentary.
// It returns an error describing the first malformed construct found.
func Parse(content string) ([]model.BibliographyEntry, error) {
	p := &parser{src: []rune(content), line: 1}
	return p.parse()
}

// KeySet returns the set of citation keys present in the entries.
func KeySet(entries []model.BibliographyEntry) map[string]bool {
	keys := make(map[string]bool, len(entries))
	for _, entry := range entries {
		keys[entry.Key] = true
	}
	return keys
}

// parser is a single-pass scanner over the BibTeX source.
// It tracks the current line for error reporting.
type parser struct {
	src  []rune
	pos  int
	line int
}

func (p *parser) parse() ([]model.BibliographyEntry, error) {
	var entries []model.BibliographyEntry

	for {
		if !p.skipToEntry() {
			return entries, nil
		}

		entryType, err := p.readIdentifier()
		if err != nil {
			return entries, fmt.Errorf("line %d: expected entry type after '@': %w", p.line, err)
		}

		// Directives carry no citable entry; consume and continue.
		switch strings.ToLower(entryType) {
		case "comment", "preamble", "string":
			if err := p.skipBalancedBlock(); err != nil {
				return entries, err
			}
			continue
		}

		entry, err := p.readEntry(entryType)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}

// skipToEntry advances past inter-entry text to the next '@'.
// Returns false at end of input.
func (p *parser) skipToEntry() bool {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '@' {
			p.pos++
			return true
		}
		if c == '\n' {
			p.line++
		}
		p.pos++
	}
	return false
}

// readIdentifier reads a run of letters, digits and identifier punctuation.
func (p *parser) readIdentifier() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-' || c == ':' || c == '.' || c == '+' || c == '/' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", fmt.Errorf("empty identifier")
	}
	return string(p.src[start:p.pos]), nil
}

// readEntry reads "{key, field = value, ...}" after the entry type.
func (p *parser) readEntry(entryType string) (model.BibliographyEntry, error) {
	entry := model.BibliographyEntry{
		Type:   strings.ToLower(entryType),
		Fields: make(map[string]string),
	}

	p.skipSpace()
	if !p.consume('{') {
		return entry, fmt.Errorf("line %d: expected '{' after @%s", p.line, entryType)
	}

	p.skipSpace()
	key, err := p.readIdentifier()
	if err != nil {
		return entry, fmt.Errorf("line %d: expected citation key in @%s entry: %w", p.line, entryType, err)
	}
	entry.Key = key

	for {
		p.skipSpace()
		if p.consume('}') {
			break
		}
		if !p.consume(',') {
			return entry, fmt.Errorf("line %d: expected ',' or '}' in entry %q", p.line, entry.Key)
		}
		p.skipSpace()
		// Trailing comma before the closing brace is legal BibTeX.
		if p.consume('}') {
			break
		}

		name, err := p.readIdentifier()
		if err != nil {
			return entry, fmt.Errorf("line %d: expected field name in entry %q: %w", p.line, entry.Key, err)
		}
		p.skipSpace()
		if !p.consume('=') {
			return entry, fmt.Errorf("line %d: expected '=' after field %q in entry %q", p.line, name, entry.Key)
		}
		p.skipSpace()

		value, err := p.readValue()
		if err != nil {
			return entry, fmt.Errorf("line %d: bad value for field %q in entry %q: %w", p.line, name, entry.Key, err)
		}
		entry.Fields[strings.ToLower(name)] = value
	}

	entry.Title = entry.Fields["title"]
	entry.Author = entry.Fields["author"]
	return entry, nil
}

// readValue reads a field value: braced, quoted, or bare, with '#'
// concatenation between parts.
func (p *parser) readValue() (string, error) {
	var parts []string
	for {
		part, err := p.readValuePart()
		if err != nil {
			return "", err
		}
		parts = append(parts, part)

		p.skipSpace()
		if !p.consume('#') {
			break
		}
		p.skipSpace()
	}
	return normalizeValue(strings.Join(parts, "")), nil
}

func (p *parser) readValuePart() (string, error) {
	if p.pos >= len(p.src) {
		return "", fmt.Errorf("unexpected end of input")
	}

	switch p.src[p.pos] {
	case '{':
		return p.readBraced()
	case '"':
		return p.readQuoted()
	default:
		// Bare value: a number or an @string macro name. Macros are kept
		// verbatim since paperscan doesn't expand string definitions.
		return p.readIdentifier()
	}
}

// readBraced reads a {...} value, honoring nested braces.
func (p *parser) readBraced() (string, error) {
	p.pos++ // opening brace
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				value := string(p.src[start:p.pos])
				p.pos++
				return value, nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated '{' value")
}

// readQuoted reads a "..." value. Braces inside quotes protect quote
// characters, per BibTeX convention.
func (p *parser) readQuoted() (string, error) {
	p.pos++ // opening quote
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				value := string(p.src[start:p.pos])
				p.pos++
				return value, nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated quoted value")
}

// skipBalancedBlock consumes a {...} or (...) directive body.
func (p *parser) skipBalancedBlock() error {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil
	}

	open := p.src[p.pos]
	var close rune
	switch open {
	case '{':
		close = '}'
	case '(':
		close = ')'
	default:
		// Directive without a body; nothing to skip.
		return nil
	}

	p.pos++
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		case '\n':
			p.line++
		}
		p.pos++
	}
	return fmt.Errorf("line %d: unterminated directive block", p.line)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\n' {
			p.line++
		} else if !unicode.IsSpace(c) {
			return
		}
		p.pos++
	}
}

func (p *parser) consume(c rune) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// normalizeValue collapses internal whitespace runs to single spaces and
// strips protective braces, yielding a value suitable for search queries.
func normalizeValue(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	value = strings.ReplaceAll(value, "{", "")
	value = strings.ReplaceAll(value, "}", "")
	return strings.TrimSpace(value)
}
