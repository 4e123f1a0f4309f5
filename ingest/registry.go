package ingest

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler verbindet eine Variante mit ihrem Spaltenkontrakt und ihrer
// Resolver/Writer-Logik. Apply verarbeitet genau einen Datensatz und läuft
// immer innerhalb einer Transaktion, die der Orchestrator hält.
type Handler interface {
	Variant() string
	Columns() []ColumnSpec
	Apply(ctx context.Context, tx *gorm.DB, row Row) error
}

// Registry hält alle bekannten Varianten in Abhängigkeitsreihenfolge:
// Artikel vor Referenzen, E-Mails zuletzt. datasets ist ein Platzhalter
// ohne eigenen Loader.
type Registry struct {
	ordered []Handler
	byName  map[string]Handler
}

// NewRegistry verdrahtet die Varianten der DUOS-Extrakte.
func NewRegistry(log *zap.Logger) *Registry {
	ordered := []Handler{
		&articlesHandler{log: log},
		&datasetsHandler{},
		&referencesHandler{log: log},
		&emailsHandler{log: log},
	}
	byName := make(map[string]Handler, len(ordered))
	for _, h := range ordered {
		byName[h.Variant()] = h
	}
	return &Registry{ordered: ordered, byName: byName}
}

// All gibt die Handler in Verarbeitungsreihenfolge zurück.
func (r *Registry) All() []Handler {
	return r.ordered
}

// Lookup findet den Handler zu einem Dateinamens-Stamm.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// datasetsHandler ist der reservierte Platzhalter: keine Spalten, kein
// Loader. Eine alleinstehende datasets.csv ist ein No-op.
type datasetsHandler struct{}

func (h *datasetsHandler) Variant() string       { return "datasets" }
func (h *datasetsHandler) Columns() []ColumnSpec { return nil }

func (h *datasetsHandler) Apply(context.Context, *gorm.DB, Row) error {
	return nil
}
