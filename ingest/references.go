package ingest

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duosload/models"
)

// referencesHandler lädt einen references-Datensatz: Datensatz per
// lookup-or-create, zitierender Artikel muss bereits geladen sein,
// danach die Reference-Kante mit Integritäts-Fingerprint.
type referencesHandler struct {
	log *zap.Logger
}

func (h *referencesHandler) Variant() string { return "references" }

func (h *referencesHandler) Columns() []ColumnSpec {
	return []ColumnSpec{
		{Name: colArticleLabel, Type: TypeString},
		{Name: colDatasetName, Type: TypeString},
		{Name: colDatasetLabel, Type: TypeString},
	}
}

func (h *referencesHandler) Apply(ctx context.Context, tx *gorm.DB, row Row) error {
	unit := NormalizeReference(row)

	dataset, err := h.resolveDataset(tx, unit)
	if err != nil {
		return err
	}

	var article models.Article
	err = tx.Where("label = ?", unit.ArticleLabel).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Referenzen setzen voraus, dass ihre Artikel vorher geladen wurden.
		return &UnresolvedForeignKeyError{Kind: "Article", Key: unit.ArticleLabel}
	}
	if err != nil {
		return err
	}

	// Eine bereits vorhandene Kante ist ein Duplikat, kein Fehler. Der
	// historische Loader hat in diesem Fall den ganzen Datensatz verworfen;
	// hier wird nur die doppelte Kante ausgelassen.
	var existing models.Reference
	err = tx.Where("dataset_id = ? AND article_id = ?", dataset.ID, article.ID).First(&existing).Error
	if err == nil {
		h.log.Info("duplicate reference, article already linked to dataset",
			zap.String("article_label", unit.ArticleLabel),
			zap.String("dataset_label", unit.DatasetLabel))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	ref := models.Reference{
		DatasetID:    dataset.ID,
		ArticleID:    article.ID,
		IntegrityTag: ReferenceTag(unit.ArticleLabel, unit.DatasetLabel),
	}
	return tx.Create(&ref).Error
}

// resolveDataset findet den Datensatz über sein Label oder legt ihn an.
// Ein zweiter Datensatz mit demselben Label entsteht dadurch nie.
func (h *referencesHandler) resolveDataset(tx *gorm.DB, unit ReferenceUnit) (models.Dataset, error) {
	var dataset models.Dataset
	err := tx.Where("label = ?", unit.DatasetLabel).First(&dataset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dataset = models.Dataset{Name: unit.DatasetName, Label: unit.DatasetLabel}
		if err := tx.Create(&dataset).Error; err != nil {
			return models.Dataset{}, err
		}
		return dataset, nil
	}
	return dataset, err
}
