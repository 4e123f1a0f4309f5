package ingest

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func articlesRow(label, title, authors string) Row {
	return Row{Index: 0, Values: map[string]any{
		"duos_article_label": label,
		"title":              title,
		"author_list":        authors,
	}}
}

func TestArticlesApplyInsertsArticleAuthorsAndWrites(t *testing.T) {
	db, mock := newMockDB(t)
	h := &articlesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	// Artikel: nicht vorhanden, wird angelegt
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "article"`).WithArgs("T", "L1").WillReturnRows(idRows(1))
	// Autorin 1 + Kante
	mock.ExpectQuery(`SELECT \* FROM "author" WHERE name =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "author"`).WillReturnRows(idRows(10))
	mock.ExpectQuery(`SELECT \* FROM "writes" WHERE article_id =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "writes"`).WillReturnRows(idRows(100))
	// Autor 2 + Kante
	mock.ExpectQuery(`SELECT \* FROM "author" WHERE name =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "author"`).WillReturnRows(idRows(11))
	mock.ExpectQuery(`SELECT \* FROM "writes" WHERE article_id =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "writes"`).WillReturnRows(idRows(101))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, articlesRow("L1", "T", "Jane Doe, John Smith"))
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlesApplyReusesExistingEntities(t *testing.T) {
	db, mock := newMockDB(t)
	h := &articlesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	// alles schon vorhanden: kein einziges INSERT
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "label"}).AddRow(1, "T", "L1"))
	mock.ExpectQuery(`SELECT \* FROM "author" WHERE name =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(10, "Jane Doe", ""))
	mock.ExpectQuery(`SELECT \* FROM "writes" WHERE article_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "article_id", "author_id", "writes_hash"}).
			AddRow(100, 1, 10, WritesHash(1, 10)))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, articlesRow("L1", "T", "Jane Doe"))
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlesApplyEmptyAuthorNameFailsBeforeAnyInsert(t *testing.T) {
	db, mock := newMockDB(t)
	h := &articlesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, articlesRow("L1", "T", "Jane Doe,"))
	})

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "author_list", malformed.Field)
	require.Equal(t, 0, malformed.Row)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlesApplyRollsBackOnStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	h := &articlesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "article"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`SELECT \* FROM "author" WHERE name =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "author"`).WillReturnError(errTransient)
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, articlesRow("L1", "T", "Jane Doe"))
	})
	require.ErrorIs(t, err, errTransient)
	require.False(t, IsDataError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
