package models

// Session protokolliert einen Upload-Lauf: eine Zeile pro Lauf mit
// UUID und der menschenlesbaren Zusammenfassung.
type Session struct {
	ID        uint   `json:"id" gorm:"primaryKey;column:int_session_id"`
	SessionID string `json:"session_id" gorm:"not null"`
	Message   string `json:"message" gorm:"not null"`
}

// TableName gibt explizit den Tabellennamen an.
func (Session) TableName() string {
	return "session"
}
