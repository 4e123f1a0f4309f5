package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Reader liest genau eine CSV-Datei einer Variante: Header-Validierung beim
// Öffnen, danach eine endliche, nicht zurücksetzbare Folge validierter
// Zeilen über Next. Die Datei bleibt nur für die Dauer des Lesens offen.
type Reader struct {
	variant string
	cols    []ColumnSpec
	file    *os.File
	csv     *csv.Reader
	header  []string
	next    int
}

// OpenReader öffnet <dir>/<variant>.csv und prüft den exakten
// Spaltenkontrakt. Fehlende Spalten werden vor überzähligen gemeldet.
func OpenReader(dir, variant string, cols []ColumnSpec) (*Reader, error) {
	f, err := os.Open(filepath.Join(dir, variant+".csv"))
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, err
	}

	required := make(map[string]bool, len(cols))
	for _, c := range cols {
		required[c.Name] = true
	}
	present := make(map[string]bool, len(header))
	var extraneous []string
	for _, name := range header {
		if !required[name] || present[name] {
			extraneous = append(extraneous, name)
		}
		present[name] = true
	}
	for _, c := range cols {
		if !present[c.Name] {
			f.Close()
			return nil, &SchemaError{Variant: variant, Missing: c.Name}
		}
	}
	if len(extraneous) > 0 {
		f.Close()
		return nil, &SchemaError{Variant: variant, Extraneous: extraneous}
	}

	return &Reader{variant: variant, cols: cols, file: f, csv: cr, header: header}, nil
}

// Next liefert die nächste validierte Zeile oder io.EOF am Dateiende.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if err != nil {
		return Row{}, err
	}

	idx := r.next
	r.next++

	types := make(map[string]ColumnType, len(r.cols))
	for _, c := range r.cols {
		types[c.Name] = c.Type
	}

	values := make(map[string]any, len(record))
	for i, raw := range record {
		name := r.header[i]
		if raw == "" {
			return Row{}, &MalformedRecordError{Variant: r.variant, Row: idx, Field: name}
		}
		switch types[name] {
		case TypeInt:
			n, convErr := strconv.Atoi(raw)
			if convErr != nil {
				return Row{}, &MalformedRecordError{Variant: r.variant, Row: idx, Field: name}
			}
			values[name] = n
		default:
			values[name] = raw
		}
	}

	return Row{Index: idx, Values: values}, nil
}

// Close gibt das Datei-Handle frei.
func (r *Reader) Close() error {
	return r.file.Close()
}

var _ io.Closer = (*Reader)(nil)
