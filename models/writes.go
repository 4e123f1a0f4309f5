package models

// Writes modelliert die M:N-Kante Artikel—Autor, eine Zeile pro Paar.
// Der Hash wird beim Einfügen aus beiden IDs abgeleitet (hashids, Salt "duos").
type Writes struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ArticleID uint   `json:"article_id" gorm:"not null;index"`
	AuthorID  uint   `json:"author_id" gorm:"not null;index"`
	Hash      string `json:"writes_hash" gorm:"column:writes_hash;not null"`

	Article Article `json:"-" gorm:"foreignKey:ArticleID"`
	Author  Author  `json:"-" gorm:"foreignKey:AuthorID"`
}

// TableName gibt explizit den Tabellennamen an.
func (Writes) TableName() string {
	return "writes"
}
