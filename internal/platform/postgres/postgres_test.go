package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyURLDisablesPostgres(t *testing.T) {
	db, err := Open(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, db)
}

func TestApplySchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS a").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS b").WillReturnError(errors.New("permission denied"))

	err = ApplySchema(context.Background(), db,
		"CREATE TABLE IF NOT EXISTS a (id INT)",
		"CREATE TABLE IF NOT EXISTS b (id INT)",
		"CREATE TABLE IF NOT EXISTS c (id INT)",
	)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
