package models

// Article repräsentiert einen Artikel der DUOS-Studie. Das Label ist der
// natürliche Schlüssel, über den andere Dateien den Artikel referenzieren.
type Article struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"not null"`
	Label string `json:"label" gorm:"not null;index"`
}

// TableName gibt explizit den Tabellennamen an.
func (Article) TableName() string {
	return "article"
}
