// Package engine orchestrates manuscript verification.
//
// The Engine assembles the analyzer set, fans the checks out over a
// document, and aggregates their findings into a VerificationReport.
// Verify operates on pre-loaded content only; VerifyFiles is the
// filesystem-aware entry point that reads the manuscript and parses the
// bibliography before delegating to Verify. BatchProcessor runs many
// manuscripts concurrently with per-document failure isolation.
package engine
