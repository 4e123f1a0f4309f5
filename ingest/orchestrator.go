package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duosload/config"
)

// ErrFailFast bricht einen Lauf nach dem ersten fehlgeschlagenen Datensatz
// ab, wenn FailFast konfiguriert ist.
var ErrFailFast = errors.New("aborting run after first record failure")

// Orchestrator treibt den kompletten Batch-Lauf: Discovery der Eingaben,
// feste Abhängigkeitsreihenfolge der Varianten, eine Transaktion pro
// Datensatz, Isolation aller Fehler auf die engste Ebene und die
// Zusammenfassung am Ende. Ein logischer Worker, strikt sequenziell.
type Orchestrator struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.Logger
	reg *Registry
}

// NewOrchestrator baut den Orchestrator über dem geteilten Store-Handle.
func NewOrchestrator(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, db: db, log: log, reg: NewRegistry(log)}
}

// Run verarbeitet alle entdeckten CSV-Dateien im Upload-Verzeichnis.
// Der Report ist auch bei einem Fail-Fast-Abbruch vollständig bis dahin.
func (o *Orchestrator) Run(ctx context.Context) (*RunReport, error) {
	discovered, err := o.discover()
	if err != nil {
		return nil, err
	}
	o.log.Info("CSVs discovered", zap.Strings("stems", sortedKeys(discovered)))

	report := &RunReport{}

	for name := range discovered {
		if _, ok := o.reg.Lookup(name); !ok {
			variantErr := &UnknownVariantError{Name: name}
			o.log.Warn("skipping unrecognized input file", zap.Error(variantErr))
			report.Skipped = append(report.Skipped, SkippedFile{Name: name, Err: variantErr})
		}
	}

	for _, handler := range o.reg.All() {
		if !discovered[handler.Variant()] {
			continue
		}
		if len(handler.Columns()) == 0 {
			// Reservierte Platzhalter-Variante ohne eigenen Loader.
			o.log.Info("variant has no loader, nothing to do", zap.String("variant", handler.Variant()))
			continue
		}
		if err := o.processFile(ctx, handler, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// discover sammelt die Dateinamens-Stämme aller *.csv im Upload-Verzeichnis.
func (o *Orchestrator) discover() (map[string]bool, error) {
	entries, err := os.ReadDir(o.cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	stems := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		stems[strings.TrimSuffix(entry.Name(), ".csv")] = true
	}
	return stems, nil
}

// processFile verarbeitet genau eine Variantendatei. Ein SchemaError bricht
// nur diese Datei ab; Datensatzfehler werden gesammelt und der Lauf geht
// weiter, außer FailFast ist gesetzt.
func (o *Orchestrator) processFile(ctx context.Context, handler Handler, report *RunReport) error {
	log := o.log.With(zap.String("variant", handler.Variant()))

	reader, err := OpenReader(o.cfg.UploadDir, handler.Variant(), handler.Columns())
	if err != nil {
		log.Warn("skipping file", zap.Error(err))
		report.Skipped = append(report.Skipped, SkippedFile{Name: handler.Variant(), Err: err})
		return nil
	}
	defer reader.Close()

	result := VariantReport{Variant: handler.Variant()}
	defer func() {
		report.Variants = append(report.Variants, result)
		log.Info("variant processed",
			zap.Int("attempted", result.Attempted),
			zap.Int("succeeded", result.Succeeded),
			zap.Int("failed", len(result.Failures)))
	}()

	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		var malformed *MalformedRecordError
		if errors.As(err, &malformed) {
			// Datensatz überspringen, Datei weiterlesen.
			result.Attempted++
			result.Failures = append(result.Failures, RecordFailure{Row: malformed.Row, Err: err})
			recordsProcessed.WithLabelValues(handler.Variant()).Inc()
			recordFailures.WithLabelValues(handler.Variant()).Inc()
			log.Warn("malformed record skipped", zap.Int("row", malformed.Row), zap.Error(err))
			if o.cfg.FailFast {
				return ErrFailFast
			}
			continue
		}
		if err != nil {
			// Lesefehler mitten in der Datei: Rest der Datei aufgeben.
			result.Failures = append(result.Failures, RecordFailure{Row: -1, Err: err})
			log.Error("aborting file after read error", zap.Error(err))
			return nil
		}

		result.Attempted++
		recordsProcessed.WithLabelValues(handler.Variant()).Inc()

		if err := o.applyRecord(ctx, handler, row); err != nil {
			result.Failures = append(result.Failures, RecordFailure{Row: row.Index, Err: err})
			recordFailures.WithLabelValues(handler.Variant()).Inc()
			log.Warn("record failed, transaction rolled back", zap.Int("row", row.Index), zap.Error(err))
			if o.cfg.FailFast {
				return ErrFailFast
			}
			continue
		}
		result.Succeeded++
	}
}

// applyRecord führt einen Datensatz in einer eigenen Transaktion aus.
// Transiente Store-Fehler werden begrenzt wiederholt, Datenfehler nie.
func (o *Orchestrator) applyRecord(ctx context.Context, handler Handler, row Row) error {
	var err error
	for attempt := 0; ; attempt++ {
		recCtx, cancel := context.WithTimeout(ctx, o.cfg.RecordTimeout)
		err = o.db.WithContext(recCtx).Transaction(func(tx *gorm.DB) error {
			return handler.Apply(recCtx, tx, row)
		})
		cancel()

		if err == nil || IsDataError(err) || attempt >= o.cfg.MaxRetries {
			return err
		}
		o.log.Warn("transient store error, retrying record",
			zap.String("variant", handler.Variant()),
			zap.Int("row", row.Index),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		time.Sleep(o.cfg.RetryBackoff)
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
