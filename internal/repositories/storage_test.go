package repositories

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func exerciseStorage(t *testing.T, repo interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}) {
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "financeFlowToken")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Set(ctx, "financeFlowToken", "token-1"))
	assert.NoError(t, repo.Set(ctx, "financeFlowUser", `{"name":"John"}`))

	val, ok, err := repo.Get(ctx, "financeFlowToken")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-1", val)

	// overwrite
	assert.NoError(t, repo.Set(ctx, "financeFlowToken", "token-2"))
	val, _, err = repo.Get(ctx, "financeFlowToken")
	assert.NoError(t, err)
	assert.Equal(t, "token-2", val)

	assert.NoError(t, repo.Delete(ctx, "financeFlowToken", "financeFlowUser", "missing"))
	_, ok, err = repo.Get(ctx, "financeFlowToken")
	assert.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = repo.Get(ctx, "financeFlowUser")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Delete(ctx))
}

func TestSQLStorageRepository_SQLite(t *testing.T) {
	exerciseStorage(t, NewSQLStorageRepository(setupSQLite(t)))
}

func TestOpenSQLite_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	db, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	repo := NewSQLStorageRepository(db)
	require.NoError(t, repo.Set(context.Background(), "k", "v"))
	db.Close()

	db, err = OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	val, ok, err := NewSQLStorageRepository(db).Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := RunMigrations("mysql", "whatever")
	assert.Error(t, err)
}

func TestSQLStorageRepository_Errors(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewSQLStorageRepository(sqlx.NewDb(mockDB, "sqlmock"))
	ctx := context.Background()
	dbErr := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT storage_value FROM client_storage WHERE storage_key = ?")).
		WithArgs("financeFlowUser").
		WillReturnError(dbErr)
	_, ok, err := repo.Get(ctx, "financeFlowUser")
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, ok)

	mock.ExpectExec("INSERT INTO client_storage").
		WithArgs("financeFlowToken", "t").
		WillReturnError(dbErr)
	assert.ErrorIs(t, repo.Set(ctx, "financeFlowToken", "t"), dbErr)

	mock.ExpectExec("DELETE FROM client_storage").
		WithArgs("a", "b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	assert.NoError(t, repo.Delete(ctx, "a", "b"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStorageRepository_Postgres(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := OpenPostgres(ctx, dsn, 4, 2)
	require.NoError(t, err)
	defer db.Close()

	exerciseStorage(t, NewSQLStorageRepository(db))
}
