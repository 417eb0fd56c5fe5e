// Package model defines the data structures shared across paperscan.
//
// The central types are Finding (the result of a single analyzer run) and
// VerificationReport (the aggregated result of verifying one manuscript).
// These types are pure data: they carry no behavior beyond construction
// and aggregation helpers, so they can be serialized to JSON and rendered
// by the report package without further processing.
package model
