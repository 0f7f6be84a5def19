package model

import (
	"path/filepath"
	"testing"

	"sprachschule/internal/config"
)

func TestInitRepositorySQLite(t *testing.T) {
	cfg := &config.Config{
		DBType: DBTypeSQLite,
		DBPath: filepath.Join(t.TempDir(), "test.db"),
	}

	repo, err := InitRepository(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo == nil {
		t.Fatal("expected a repository, got nil")
	}
}

// A misconfigured database type must fail loudly at startup instead of
// handing main a nil repository.
func TestInitRepositoryRejectsUnknownType(t *testing.T) {
	tests := []struct {
		name   string
		dbType string
	}{
		{name: "Empty", dbType: ""},
		{name: "Unknown", dbType: "oracle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := InitRepository(&config.Config{DBType: tt.dbType})
			if err == nil {
				t.Fatal("expected an error for unsupported database type")
			}
			if repo != nil {
				t.Fatal("expected no repository on error")
			}
		})
	}
}
