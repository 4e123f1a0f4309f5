package models

import "time"

// Validates speichert die Antwort eines Autors auf eine Referenz-Anfrage.
// Die Zeilen entstehen erst im nachgelagerten Umfrage-Workflow; die Pipeline
// legt nur die Tabelle an.
type Validates struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	RefID         uint       `json:"ref_id" gorm:"not null;index"`
	AuthorID      uint       `json:"author_id" gorm:"not null;index"`
	Response      string     `json:"response,omitempty"`
	Clarification string     `json:"clarification,omitempty"`
	InsertDate    *time.Time `json:"insert_date,omitempty"`
	ActionDate    *time.Time `json:"action_date,omitempty"`

	Reference Reference `json:"-" gorm:"foreignKey:RefID"`
	Author    Author    `json:"-" gorm:"foreignKey:AuthorID"`
}

// TableName gibt explizit den Tabellennamen an.
func (Validates) TableName() string {
	return "validates"
}
