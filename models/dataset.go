package models

// Dataset repräsentiert einen von Artikeln zitierten Datensatz.
// Das Label ist der natürliche Schlüssel (lookup-or-create).
type Dataset struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Label        string `json:"label" gorm:"not null;index"`
}

// TableName gibt explizit den Tabellennamen an.
func (Dataset) TableName() string {
	return "dataset"
}
