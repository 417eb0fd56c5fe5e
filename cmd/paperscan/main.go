// Package main provides the entry point for the paperscan CLI.
//
// paperscan is a verification tool for academic manuscripts written in
// Markdown. It detects sparse list-driven prose, boilerplate phrasing,
// unformatted math notation, malformed citations, broken image
// references, embedded code, and bibliography entries that cannot be
// corroborated against a search index.
//
// Usage:
//
//	paperscan verify paper.md
//	paperscan verify --bib refs.bib paper.md
//
// See --help for all available options.
package main

// main is the entry point for paperscan.
func main() {
	Execute()
}
