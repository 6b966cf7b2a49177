package checks

import (
	"regexp"
	"testing"

	"resource-manager/core/catalog"
	"resource-manager/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckCatalogSchema_NilDB(t *testing.T) {
	report, err := CheckCatalogSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckCatalogSchema_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	_, err = CheckCatalogSchema(db)
	assert.ErrorContains(t, err, "does not exist")

	require.NoError(t, catalog.New(db).Migrate())

	report, err := CheckCatalogSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "assets", report.Table)
	assert.Empty(t, report.MissingColumns)
	assert.Empty(t, report.TypeMismatches)
}

func TestCheckCatalogSchema_MySQLMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("raw_id", "varchar(32)", "NO", "PRI", nil, "").
		AddRow("object_key", "varchar(512)", "YES", "", nil, "").
		AddRow("kind", "varchar(32)", "YES", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `assets`")).WillReturnRows(rows)

	report, err := CheckCatalogSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"name"}, report.MissingColumns)
	assert.Equal(t, []string{"raw_id: expected int, got varchar(32)"}, report.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}
