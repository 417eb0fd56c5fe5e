// Package analyzer implements the verification checks paperscan runs over
// a manuscript.
//
// Each analyzer is an independent, stateless check over the raw document
// text: paragraph sparsity, boilerplate phrasing, unescaped math notation,
// citation markers, image references, code blocks, reference counts, and
// bibliography corroboration against an external search index. Analyzers
// share no state and may run concurrently over the same Document.
//
// Detection is deliberately regex and string based. The goal is cheap,
// explainable heuristics with fixed documented thresholds, not semantic
// analysis; thresholds must not be tuned without flagging the change in
// the report format.
package analyzer
