// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"os"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	if err := s.Append("sess", Entry{Source: "print 1;", Result: "1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append("sess", Entry{Source: "print 2;", Result: "2"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := s.Recent("sess", 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Seq != 1 || entries[1].Seq != 2 {
		t.Errorf("expected sequential seq 1,2, got %d,%d", entries[0].Seq, entries[1].Seq)
	}

	limited, err := s.Recent("sess", 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Result != "2" {
		t.Errorf("expected only the most recent entry, got %+v", limited)
	}
}

func TestSQLiteStore(t *testing.T) {
	f, err := os.CreateTemp("", "plox-history-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	if err := s.Append("sess", Entry{Source: "var a = 1;", Result: ""}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := s.Append("sess", Entry{Source: "print a;", Result: "1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := s.Recent("sess", 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Result != "1" {
		t.Errorf("expected last result '1', got %q", entries[1].Result)
	}

	// Reopening should see the schema version and not re-migrate.
	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	again, err := s2.Recent("sess", 0)
	if err != nil {
		t.Fatalf("Recent after reopen failed: %v", err)
	}
	if len(again) != 2 {
		t.Errorf("expected transcript to survive reopen, got %d entries", len(again))
	}
}
