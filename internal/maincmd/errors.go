package maincmd

import "errors"

// errCompileFailed is returned when the scan/parse/resolve pipeline
// already printed its diagnostics to stderr; callers just need a non-nil
// error to report a failing exit code.
var errCompileFailed = errors.New("larch: compilation failed")
