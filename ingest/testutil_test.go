package ingest

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB öffnet gorm über einer sqlmock-Verbindung, damit die
// Transaktions-Handler ohne laufende Datenbank getestet werden können.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// errTransient steht für einen Verbindungsfehler des Stores.
var errTransient = errors.New("connection reset by peer")

func idRows(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}

func noRows(cols ...string) *sqlmock.Rows {
	if len(cols) == 0 {
		cols = []string{"id"}
	}
	return sqlmock.NewRows(cols)
}
