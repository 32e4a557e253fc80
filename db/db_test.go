package db

import (
	"path/filepath"
	"testing"

	"gameclub/models"
)

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"club.db", "club.db?_foreign_keys=1"},
		{"file:club.db?cache=shared", "file:club.db?cache=shared&_foreign_keys=1"},
		{"file:club.db?_foreign_keys=0", "file:club.db?_foreign_keys=0"},
		{"file:club.db?_fk=1", "file:club.db?_fk=1"},
	}
	for _, tt := range tests {
		if got := withForeignKeys(tt.dsn); got != tt.want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestFileSQLiteEnforcesForeignKeysOnNewConnections(t *testing.T) {
	dialector, err := Dialector("sqlite", filepath.Join(t.TempDir(), "club.db"))
	if err != nil {
		t.Fatalf("dialector: %v", err)
	}
	conn, err := Open(dialector, PoolOptions{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Drop the connection that ran the pragma so the next query opens a fresh one.
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetMaxIdleConns(1)

	session := &models.GameSession{GameID: 999, Status: models.StatusScheduled, Record: models.Record{Version: 1}}
	if err := conn.Create(session).Error; err == nil {
		t.Fatal("expected the missing game to be rejected by a foreign key")
	}
}
