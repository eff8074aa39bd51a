package database_test

import (
	"testing"

	"github.com/taiwoajasa245/verbum-dei-api/internal/database/dbtest"
)

func TestHealth(t *testing.T) {
	srv := dbtest.StartPostgres(t)

	stats := srv.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestClose(t *testing.T) {
	srv := dbtest.StartPostgres(t)

	if srv.Close() != nil {
		t.Fatalf("expected Close() to return nil")
	}
}
