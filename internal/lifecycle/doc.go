// Package lifecycle starts and stops download runs. It owns the run state,
// the cooperative stop flag and the worker goroutine.
package lifecycle
