// Package fixtures fetches the day's matches from the football-data.org v4 API.
//
// A fetch never fails outright: transport problems, non-200 responses and
// undecodable bodies all produce an empty Result whose Err records what went
// wrong, so the caller can still send a "no matches" digest.
package fixtures
