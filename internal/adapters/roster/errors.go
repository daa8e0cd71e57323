package roster

import "errors"

// Sentinel kinds for roster file errors. Malformed input is rejected here,
// before anything reaches the core.
var (
	ErrImport = errors.New("invalid roster file")
	ErrExport = errors.New("roster export failed")
)
