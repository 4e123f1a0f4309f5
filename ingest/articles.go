package ingest

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duosload/models"
)

// articlesHandler lädt einen articles-Datensatz: Artikel, Autoren und die
// Writes-Kanten dazwischen, alles lookup-or-create über natürliche
// Schlüssel, damit ein erneuter Lauf die Zeilenzahlen nicht verdoppelt.
type articlesHandler struct {
	log *zap.Logger
}

func (h *articlesHandler) Variant() string { return "articles" }

func (h *articlesHandler) Columns() []ColumnSpec {
	return []ColumnSpec{
		{Name: colArticleLabel, Type: TypeString},
		{Name: colTitle, Type: TypeString},
		{Name: colAuthorList, Type: TypeString},
	}
}

func (h *articlesHandler) Apply(ctx context.Context, tx *gorm.DB, row Row) error {
	unit := NormalizeArticle(row)

	// Leere Autorennamen (z.B. abschließendes Komma in der Liste) kommen
	// unverändert aus dem Normalizer und scheitern hier, bevor irgendetwas
	// geschrieben wird.
	for _, name := range unit.Authors {
		if name == "" {
			return &MalformedRecordError{Variant: h.Variant(), Row: row.Index, Field: colAuthorList}
		}
	}

	article, err := h.resolveArticle(tx, unit)
	if err != nil {
		return err
	}

	for _, name := range unit.Authors {
		author, err := h.resolveAuthor(tx, name)
		if err != nil {
			return err
		}
		if err := h.linkWrites(tx, article.ID, author.ID); err != nil {
			return err
		}
	}
	return nil
}

// resolveArticle findet den Artikel über sein Label oder legt ihn an.
func (h *articlesHandler) resolveArticle(tx *gorm.DB, unit ArticleUnit) (models.Article, error) {
	var article models.Article
	err := tx.Where("label = ?", unit.Label).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		article = models.Article{Title: unit.Title, Label: unit.Label}
		if err := tx.Create(&article).Error; err != nil {
			return models.Article{}, err
		}
		return article, nil
	}
	return article, err
}

// resolveAuthor dedupliziert Autoren über den Namen. Namenskollisionen
// zwischen verschiedenen Personen werden dabei zusammengelegt.
func (h *articlesHandler) resolveAuthor(tx *gorm.DB, name string) (models.Author, error) {
	var author models.Author
	err := tx.Where("name = ?", name).First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		author = models.Author{Name: name}
		if err := tx.Create(&author).Error; err != nil {
			return models.Author{}, err
		}
		return author, nil
	}
	return author, err
}

// linkWrites legt die Kante (article, author) an, falls sie fehlt.
func (h *articlesHandler) linkWrites(tx *gorm.DB, articleID, authorID uint) error {
	var edge models.Writes
	err := tx.Where("article_id = ? AND author_id = ?", articleID, authorID).First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		edge = models.Writes{
			ArticleID: articleID,
			AuthorID:  authorID,
			Hash:      WritesHash(articleID, authorID),
		}
		return tx.Create(&edge).Error
	}
	return err
}
