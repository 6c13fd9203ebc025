// Package cli implements the command-line interface for matchday.
//
// The cli package provides the Cobra-based root command that loads
// configuration, sets up logging, wires the fixtures client, the Telegram
// client and any extra channels into a job.Runner, and prints a run summary
// as text or JSON.
package cli
