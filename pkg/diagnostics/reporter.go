// SPDX-License-Identifier: Apache-2.0

package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Destination is where Report sends a sorted warning list.
type Destination struct {
	stderr bool
	path   string
}

// StderrDestination sends warnings to stderr.
func StderrDestination() Destination {
	return Destination{stderr: true}
}

// FileDestination sends warnings to the named file, truncating it first.
func FileDestination(path string) Destination {
	return Destination{path: path}
}

// DestinationFromFlag mirrors the CLI's --emit-warnings flag semantics:
// an empty path or the literal "stderr" both mean stderr.
func DestinationFromFlag(path string) Destination {
	if path == "" || path == "stderr" {
		return StderrDestination()
	}
	return FileDestination(path)
}

// Sorted returns a copy of warnings ordered by (object, code), the order
// every report and strict-mode check presents them in.
func Sorted(warnings []Warning) []Warning {
	sorted := make([]Warning, len(warnings))
	copy(sorted, warnings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Object != sorted[j].Object {
			return sorted[i].Object < sorted[j].Object
		}
		return sorted[i].Code < sorted[j].Code
	})
	return sorted
}

// Report writes warnings, sorted, to dest.
func Report(warnings []Warning, dest Destination) error {
	if len(warnings) == 0 {
		return nil
	}

	var w io.Writer
	if dest.stderr {
		w = os.Stderr
	} else {
		f, err := os.Create(dest.path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	for _, warning := range Sorted(warnings) {
		if _, err := fmt.Fprintln(w, warning.String()); err != nil {
			return err
		}
	}
	return nil
}

// StrictViolationError is returned by CheckStrict when any warning meets
// or exceeds Lossy severity.
type StrictViolationError struct {
	Warnings []Warning
}

func (e *StrictViolationError) Error() string {
	msg := fmt.Sprintf("strict mode: %d lossy conversion(s) found:\n", len(e.Warnings))
	for _, w := range e.Warnings {
		msg += "  " + w.String() + "\n"
	}
	return msg
}

// CheckStrict fails with a *StrictViolationError if any warning has
// Severity >= Lossy.
func CheckStrict(warnings []Warning) error {
	var violations []Warning
	for _, w := range warnings {
		if w.Severity >= Lossy {
			violations = append(violations, w)
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &StrictViolationError{Warnings: Sorted(violations)}
}
