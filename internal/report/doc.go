// Package report renders verification reports in multiple output
// formats.
//
// Three writers share the Writer interface: SimpleWriter for terminal
// display, MarkdownWriter for documentation and sharing, and JSONWriter
// for tool integration. MultiWriter fans one report out to several
// destinations, typically terminal plus file.
package report
