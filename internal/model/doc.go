// Package model defines domain data structures shared by the orchestrator, the
// progress reporter and the UI: jobs, run configuration snapshots, run results,
// log events and the run lifecycle state.
package model
