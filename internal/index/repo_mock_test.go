package index

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// newMockDB creates a sqlmock-backed DB with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		conn.Close()
	})
	return newDB(conn), mock
}

var documentColumns = []string{"name", "title", "checksum", "node_count", "edge_count", "labels", "updated_at"}

func TestUpsertDocument_RollsBackOnInsertError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := db.UpsertDocument(DocumentRow{Name: "plan", Title: "Plan"})
	if err == nil || !strings.Contains(err.Error(), "index: upsert document") {
		t.Fatalf("err = %v", err)
	}
}

func TestUpsertDocument_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	if err := db.UpsertDocument(DocumentRow{Name: "plan"}); err == nil {
		t.Fatal("expected begin error")
	}
}

func TestGetChecksum_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT checksum FROM documents WHERE name = ?").
		WithArgs("plan").
		WillReturnError(errors.New("boom"))

	if _, err := db.GetChecksum("plan"); err == nil || !strings.Contains(err.Error(), "index: get checksum") {
		t.Fatalf("err = %v", err)
	}
}

func TestGetDocument_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM documents WHERE name = ?").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	d, err := db.GetDocument("ghost")
	if err != nil || d != nil {
		t.Fatalf("GetDocument = %v, %v; want nil, nil", d, err)
	}
}

func TestListDocuments_BadLabelsDefaultToEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM documents\\s+ORDER BY name").
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(documentColumns).AddRow("plan", "Plan", "abc", 2, 1, "not json", now))

	rows, total, err := db.ListDocuments(0, -5, SortName)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("rows = %v total = %d", rows, total)
	}
	if rows[0].Labels == nil || len(rows[0].Labels) != 0 {
		t.Errorf("labels = %v, want empty", rows[0].Labels)
	}
	if rows[0].NodeCount != 2 || !rows[0].UpdatedAt.Equal(now) {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestListDocuments_CountError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("boom"))

	if _, _, err := db.ListDocuments(10, 0, ""); err == nil || !strings.Contains(err.Error(), "index: count documents") {
		t.Fatalf("err = %v", err)
	}
}
