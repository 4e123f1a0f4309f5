package ingest

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duosload/models"
)

// emailsHandler setzt die Mail-Adresse eines bereits geladenen Autors und
// markiert dessen Writes-Kanten als E-Mail-Empfänger. Der Schlüssel in der
// Datei ist die Surrogat-ID des Autors, wie sie der Studienprozess nach dem
// Artikel-Load exportiert.
type emailsHandler struct {
	log *zap.Logger
}

func (h *emailsHandler) Variant() string { return "emails" }

func (h *emailsHandler) Columns() []ColumnSpec {
	return []ColumnSpec{
		{Name: colAuthorID, Type: TypeString},
		{Name: colEmailAddress, Type: TypeString},
	}
}

func (h *emailsHandler) Apply(ctx context.Context, tx *gorm.DB, row Row) error {
	unit := NormalizeEmail(row)

	id, convErr := strconv.Atoi(unit.AuthorKey)
	if convErr != nil {
		return &UnresolvedForeignKeyError{Kind: "Author", Key: unit.AuthorKey}
	}

	var author models.Author
	err := tx.Where("id = ?", id).First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &UnresolvedForeignKeyError{Kind: "Author", Key: unit.AuthorKey}
	}
	if err != nil {
		return err
	}

	if err := tx.Model(&author).Update("email", unit.Email).Error; err != nil {
		return err
	}

	var edges []models.Writes
	if err := tx.Where("author_id = ?", author.ID).Find(&edges).Error; err != nil {
		return err
	}
	for _, edge := range edges {
		if err := h.markRecipient(tx, edge.ID); err != nil {
			return err
		}
	}
	return nil
}

// markRecipient legt pro Writes-Kante höchstens eine Empfänger-Zeile an.
func (h *emailsHandler) markRecipient(tx *gorm.DB, writesID uint) error {
	var recipient models.EmailRecipient
	err := tx.Where("writes_id = ?", writesID).First(&recipient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		recipient = models.EmailRecipient{WritesID: writesID, Timestamp: time.Now().UTC()}
		return tx.Create(&recipient).Error
	}
	return err
}
