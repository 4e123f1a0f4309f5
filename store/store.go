package store

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"duosload/config"
	"duosload/models"
)

// tables listet alle Modelle in Abhängigkeitsreihenfolge (Eltern zuerst).
func tables() []interface{} {
	return []interface{}{
		&models.Article{},
		&models.Author{},
		&models.Dataset{},
		&models.Writes{},
		&models.Reference{},
		&models.Validates{},
		&models.EmailRecipient{},
		&models.Session{},
	}
}

// Open stellt die Verbindung zur DUOS-Datenbank her.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to duos database: %w", err)
	}
	return db, nil
}

// Migrate legt das komplette DUOS-Schema an.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(tables()...)
}

// Drop entfernt jede Tabelle des DUOS-Schemas. Kinder zuerst, damit die
// Fremdschlüssel nicht im Weg stehen.
func Drop(db *gorm.DB) error {
	ts := tables()
	for i := len(ts) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(ts[i]); err != nil {
			return err
		}
	}
	return nil
}

// TableNames gibt die tatsächlich vorhandenen Tabellen zurück.
func TableNames(db *gorm.DB) ([]string, error) {
	return db.Migrator().GetTables()
}

// ExistingTableCount zählt, wie viele der Schema-Tabellen bereits existieren.
func ExistingTableCount(db *gorm.DB) int {
	count := 0
	for _, t := range tables() {
		if db.Migrator().HasTable(t) {
			count++
		}
	}
	return count
}

// RecordSession schreibt die Zusammenfassung eines Upload-Laufs in die
// session-Tabelle und gibt die Lauf-ID zurück.
func RecordSession(db *gorm.DB, message string) (string, error) {
	s := models.Session{
		SessionID: uuid.NewString(),
		Message:   message,
	}
	if err := db.Create(&s).Error; err != nil {
		return "", err
	}
	return s.SessionID, nil
}
