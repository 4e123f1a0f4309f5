package models

// Author repräsentiert eine Autorin oder einen Autor eines Artikels.
// Der Name dient als natürlicher Schlüssel für die Deduplizierung;
// Namenskollisionen sind eine bekannte Einschränkung.
type Author struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null;index"`
	Email string `json:"email,omitempty"`
}

// TableName gibt explizit den Tabellennamen an.
func (Author) TableName() string {
	return "author"
}
