package models

// Reference modelliert die Kante Datensatz—Artikel: der Artikel zitiert den
// Datensatz. Der IntegrityTag ist ein deterministischer Fingerprint über
// (Artikel-Label, Datensatz-Label) und macht wiederholte Ladungen derselben
// logischen Referenz als Duplikat erkennbar.
type Reference struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	DatasetID    uint   `json:"dataset_id" gorm:"not null;index"`
	ArticleID    uint   `json:"article_id" gorm:"not null;index"`
	IntegrityTag string `json:"integrity_tag" gorm:"not null"`

	Dataset Dataset `json:"-" gorm:"foreignKey:DatasetID"`
	Article Article `json:"-" gorm:"foreignKey:ArticleID"`
}

// TableName gibt explizit den Tabellennamen an.
func (Reference) TableName() string {
	return "reference"
}
