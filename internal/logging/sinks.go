package logging

import "os"

// newStderrSink follows the teacher's own convention of writing process
// logs to stderr by default (cmd/node and cmd/coordinator both use
// log.Printf, which targets os.Stderr).
func newStderrSink() *os.File { return os.Stderr }

// openLogFile opens (creating if needed) the file logging is appended to
// when a log path is configured, matching AleutianLocal's logging.Config
// optional-file-sink shape.
func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
