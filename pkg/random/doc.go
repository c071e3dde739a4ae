// Package random produces the raw values fixtures are built from: booleans,
// alphanumeric strings, reals and integers, optionally bounded on one or both
// sides. A Generator owns its random source behind a mutex so it can be shared
// between goroutines; the package-level functions use a process-wide default
// generator that callers can swap with SetDefault to make whole test runs
// reproducible.
package random
