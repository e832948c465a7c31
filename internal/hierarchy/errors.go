package hierarchy

import "errors"

// ErrInvalidArgument is returned when a session is constructed with a
// missing target class or an ignore pattern that does not compile.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound is returned when a query names a class that is absent from
// the registry. A class pruned by the ignore pattern is indistinguishable
// from one that was never discovered.
var ErrNotFound = errors.New("class not found")

// ErrCircularInheritance is returned when the builder reaches a class that
// is still being expanded on the current root-to-leaf walk.
var ErrCircularInheritance = errors.New("circular inheritance")

// ErrUnbalancedReport is returned when report composition detects parallel
// sequences of mismatched length.
var ErrUnbalancedReport = errors.New("unbalanced report input")
