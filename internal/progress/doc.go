// Package progress carries operator-facing log events from the download
// worker to a presentation layer. The Reporter never blocks its caller; a
// Relay drains events in order and hands them to a sink running on the
// presentation side.
package progress
