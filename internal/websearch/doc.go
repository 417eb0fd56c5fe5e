// Package websearch provides the lookup client used to corroborate
// bibliography entries against an external search index (the Serper API).
//
// The client issues exactly one HTTPS request per lookup and never lets a
// failure escape: missing credentials, transport errors and non-200
// responses are all folded into the returned LookupResult.
package websearch
