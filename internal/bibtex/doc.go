// Package bibtex parses BibTeX bibliography files into entry records.
//
// The parser is intentionally small: paperscan only needs the citation key,
// the entry type and the field values (title and author in particular).
// It handles braced and quoted field values with nested braces, skips
// @comment/@preamble/@string directives, and reports the line number of
// the first syntax error it encounters.
package bibtex
