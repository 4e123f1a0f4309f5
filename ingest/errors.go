package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Die Fehler-Taxonomie der Pipeline. Jeder Fehler wird auf der engsten
// Ebene abgefangen, die den Lauf fortsetzen kann: SchemaError und
// UnknownVariantError pro Datei, MalformedRecordError und
// UnresolvedForeignKeyError pro Datensatz. Alles andere gilt als
// transienter Store-Fehler und ist retry-fähig.

// SchemaError meldet eine Header-Abweichung vom exakten Spaltenkontrakt.
// Entweder Missing oder Extraneous ist gesetzt, nie beides.
type SchemaError struct {
	Variant    string
	Missing    string
	Extraneous []string
}

func (e *SchemaError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("column %s in %s.csv is missing or misnamed", e.Missing, e.Variant)
	}
	return fmt.Sprintf("%d invalid columns provided: [%s] in %s.csv",
		len(e.Extraneous), strings.Join(e.Extraneous, ", "), e.Variant)
}

// MalformedRecordError meldet ein leeres oder nicht konvertierbares Feld.
// Row ist nullbasiert über die Datenzeilen (Header ausgenommen).
type MalformedRecordError struct {
	Variant string
	Row     int
	Field   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at row %d of %s.csv (field %q)", e.Row, e.Variant, e.Field)
}

// UnresolvedForeignKeyError meldet eine Referenz auf eine Entität, die zum
// Zeitpunkt der Auflösung nicht im Store existiert.
type UnresolvedForeignKeyError struct {
	Kind string
	Key  string
}

func (e *UnresolvedForeignKeyError) Error() string {
	return fmt.Sprintf("no %s found for key %q", e.Kind, e.Key)
}

// UnknownVariantError meldet eine entdeckte Datei ohne registrierte Variante.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%s.csv is not an accepted filename", e.Name)
}

// IsDataError unterscheidet Daten- von Store-Fehlern. Nur Nicht-Datenfehler
// werden erneut versucht.
func IsDataError(err error) bool {
	var schemaErr *SchemaError
	var malformedErr *MalformedRecordError
	var fkErr *UnresolvedForeignKeyError
	var variantErr *UnknownVariantError
	return errors.As(err, &schemaErr) ||
		errors.As(err, &malformedErr) ||
		errors.As(err, &fkErr) ||
		errors.As(err, &variantErr)
}
