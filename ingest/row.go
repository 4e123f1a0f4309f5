package ingest

// ColumnType kennzeichnet die Skalar-Konvertierung einer Spalte.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
)

// ColumnSpec beschreibt eine Pflichtspalte einer Variante.
type ColumnSpec struct {
	Name string
	Type ColumnType
}

// Row ist ein validierter Datensatz: nullbasierter Index über die
// Datenzeilen plus Spaltenname → konvertierter Wert.
type Row struct {
	Index  int
	Values map[string]any
}

// String liefert den String-Wert einer Spalte ("" wenn kein String).
func (r Row) String(col string) string {
	s, _ := r.Values[col].(string)
	return s
}

// Int liefert den Int-Wert einer Spalte (0 wenn kein Int).
func (r Row) Int(col string) int {
	n, _ := r.Values[col].(int)
	return n
}
