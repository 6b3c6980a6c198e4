// Package recommend assembles recommendation responses: it steers the
// query with extracted job requirements, ranks an oversampled candidate
// pool, applies conjunctive structured filters (duration, category,
// remote capability) and truncates to the requested count.
//
// The Engine treats every enrichment step as best-effort. External-service
// outages change the quality of a response, never its success; only a
// request with neither query nor URL fails.
package recommend
