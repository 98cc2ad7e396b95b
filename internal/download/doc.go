// Package download implements the run orchestrator: it walks a job in order,
// drives one browser page through navigation, element lookup and the
// click-to-download cycle, retries failed attempts with a fixed delay and
// produces the run tally. Progress is reported as operator-facing events.
package download
