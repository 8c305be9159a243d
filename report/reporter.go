// Package report is the diagnostic surface used by vane's IR core, its
// LLVM emitter, and its command-line front end. It follows the shape of
// the teacher compiler's own reporter: a leveled, mutex-guarded global
// singleton with ICE/fatal/violation reporting and a deferred-recover
// helper for turning contract-violation panics back into diagnostics at a
// call boundary.
//
// Unlike a source-language compiler's reporter, vane has no source text to
// underline: a violation is anchored to an IR entity's textual form (a
// function name, a block label, a value's name) rather than a line/column
// span.
package report

import (
	"fmt"
	"os"
	"sync"
)

// Reporter is responsible for reporting diagnostics to the user. It
// respects the configured log level and is safe to call from multiple
// goroutines.
type Reporter struct {
	m        *sync.Mutex
	logLevel int
	isErr    bool
}

// Enumeration of the possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors.
	LogLevelWarn           // Displays warnings and errors.
	LogLevelVerbose        // Displays every diagnostic (default).
)

var rep *Reporter

// Init initializes the global reporter to the given log level. Repeated
// calls reset the level; the first call also establishes the mutex.
func Init(logLevel int) {
	if rep == nil {
		rep = &Reporter{m: &sync.Mutex{}}
	}
	rep.m.Lock()
	rep.logLevel = logLevel
	rep.isErr = false
	rep.m.Unlock()
}

func current() *Reporter {
	if rep == nil {
		Init(LogLevelVerbose)
	}
	return rep
}

// AnyErrors reports whether any error-level diagnostic has been recorded
// since the last Init.
func AnyErrors() bool {
	return current().isErr
}

// Fatal reports a top-level driver error (bad arguments, an unreadable
// file, an unknown demo name) that has nothing to do with the IR core's
// own invariants, prints it, and terminates the process. Unlike ICE and
// Raise, Fatal never panics: there is no call boundary above the CLI's
// main worth recovering into.
func Fatal(format string, args ...interface{}) {
	r := current()
	r.m.Lock()
	r.isErr = true
	r.m.Unlock()
	displayFatal(fmt.Sprintf(format, args...))
	os.Exit(1)
}
