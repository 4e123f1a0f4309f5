package ingest

import (
	"fmt"
	"strings"
)

// RecordFailure hält den nullbasierten Zeilenindex und den Fehler eines
// einzelnen Datensatzes. Row -1 steht für einen Dateifehler mitten im Lesen.
type RecordFailure struct {
	Row int
	Err error
}

// VariantReport fasst die Verarbeitung einer Variante zusammen.
type VariantReport struct {
	Variant   string
	Attempted int
	Succeeded int
	Failures  []RecordFailure
}

// SkippedFile ist eine Datei, die komplett übersprungen wurde (Schema-Fehler
// oder unbekannte Variante).
type SkippedFile struct {
	Name string
	Err  error
}

// RunReport ist die Zusammenfassung eines kompletten Upload-Laufs.
type RunReport struct {
	Variants []VariantReport
	Skipped  []SkippedFile
}

// FailureCount zählt alle fehlgeschlagenen Datensätze und übersprungenen
// Dateien des Laufs.
func (r *RunReport) FailureCount() int {
	n := len(r.Skipped)
	for _, v := range r.Variants {
		n += len(v.Failures)
	}
	return n
}

// String rendert die menschenlesbare Zusammenfassung.
func (r *RunReport) String() string {
	var b strings.Builder
	for _, v := range r.Variants {
		fmt.Fprintf(&b, "%s: %d attempted, %d succeeded, %d failed\n",
			v.Variant, v.Attempted, v.Succeeded, len(v.Failures))
		for _, f := range v.Failures {
			if f.Row < 0 {
				fmt.Fprintf(&b, "  file error: %v\n", f.Err)
				continue
			}
			fmt.Fprintf(&b, "  row %d: %v\n", f.Row, f.Err)
		}
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "skipped %s.csv: %v\n", s.Name, s.Err)
	}
	if b.Len() == 0 {
		return "nothing to do\n"
	}
	return b.String()
}
