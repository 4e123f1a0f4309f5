package models

import "time"

// EmailRecipient markiert eine Writes-Kante, deren Autor eine Mail-Adresse
// erhalten hat. Eine Zeile pro Kante, geschrieben beim Setzen der Adresse.
type EmailRecipient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	WritesID  uint      `json:"writes_id" gorm:"not null;index"`
	Timestamp time.Time `json:"timestamp"`

	Writes Writes `json:"-" gorm:"foreignKey:WritesID"`
}

// TableName gibt explizit den Tabellennamen an.
func (EmailRecipient) TableName() string {
	return "email_recipient"
}
