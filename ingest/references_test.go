package ingest

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func referencesRow(articleLabel, name, datasetLabel string) Row {
	return Row{Index: 0, Values: map[string]any{
		"duos_article_label": articleLabel,
		"name":               name,
		"duos_dataset_label": datasetLabel,
	}}
}

func datasetRows(id int64, name, label string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "abbreviation", "label"}).
		AddRow(id, name, "", label)
}

func articleRows(id int64, title, label string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "label"}).AddRow(id, title, label)
}

func TestReferencesApplyCreatesDatasetAndEdge(t *testing.T) {
	db, mock := newMockDB(t)
	h := &referencesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "dataset" WHERE label =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "dataset"`).WillReturnRows(idRows(5))
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).WillReturnRows(articleRows(1, "T", "L1"))
	mock.ExpectQuery(`SELECT \* FROM "reference" WHERE dataset_id =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "reference"`).
		WithArgs(5, 1, ReferenceTag("L1", "D1")).
		WillReturnRows(idRows(50))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, referencesRow("L1", "Census 2020", "D1"))
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferencesApplyReusesExistingDataset(t *testing.T) {
	db, mock := newMockDB(t)
	h := &referencesHandler{log: zap.NewNop()}

	// zweiter Datensatz mit demselben Label: kein zweites Dataset-INSERT,
	// die Kante zum anderen Artikel entsteht trotzdem
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "dataset" WHERE label =`).WillReturnRows(datasetRows(5, "Census 2020", "D1"))
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).WillReturnRows(articleRows(2, "T2", "L2"))
	mock.ExpectQuery(`SELECT \* FROM "reference" WHERE dataset_id =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "reference"`).
		WithArgs(5, 2, ReferenceTag("L2", "D1")).
		WillReturnRows(idRows(51))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, referencesRow("L2", "Census 2020", "D1"))
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferencesApplyDuplicateEdgeIsSkippedNotFailed(t *testing.T) {
	db, mock := newMockDB(t)
	h := &referencesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "dataset" WHERE label =`).WillReturnRows(datasetRows(5, "Census 2020", "D1"))
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).WillReturnRows(articleRows(1, "T", "L1"))
	mock.ExpectQuery(`SELECT \* FROM "reference" WHERE dataset_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "dataset_id", "article_id", "integrity_tag"}).
			AddRow(50, 5, 1, ReferenceTag("L1", "D1")))
	mock.ExpectCommit()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, referencesRow("L1", "Census 2020", "D1"))
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReferencesApplyUnresolvedArticleRollsBackDataset(t *testing.T) {
	db, mock := newMockDB(t)
	h := &referencesHandler{log: zap.NewNop()}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "dataset" WHERE label =`).WillReturnRows(noRows())
	mock.ExpectQuery(`INSERT INTO "dataset"`).WillReturnRows(idRows(5))
	mock.ExpectQuery(`SELECT \* FROM "article" WHERE label =`).WillReturnRows(noRows())
	// kein Reference-INSERT; das Dataset-INSERT wird mit zurückgerollt
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return h.Apply(context.Background(), tx, referencesRow("L9", "Census 2020", "D1"))
	})

	var fkErr *UnresolvedForeignKeyError
	require.ErrorAs(t, err, &fkErr)
	require.Equal(t, "Article", fkErr.Kind)
	require.Equal(t, "L9", fkErr.Key)
	require.True(t, IsDataError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
