package insight

import "errors"

// Sentinel kinds for analysis errors. ErrAnalysis signals a corrupted
// internal baseline, never an empty roster (which is a valid zero-insight
// case).
var ErrAnalysis = errors.New("analysis baseline corrupted")
