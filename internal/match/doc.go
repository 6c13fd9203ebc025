// Package match provides the fixture record returned by football-data.org and
// the kickoff time handling used to render it.
//
// Records are decoded defensively: every nested object is optional, and name
// accessors fall back to "Unknown" instead of failing. Kickoff timestamps are
// stored as the raw UTC string and converted to Africa/Lagos time only when
// rendered.
package match
