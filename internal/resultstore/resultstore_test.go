package resultstore

import (
	"path/filepath"
	"testing"
	"time"
)

func TestPutAndGetBalance(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer s.Close()

	want := Balance{Address: "0xabc", Wei: "1000", Height: 42, UpdatedAt: time.Now().UTC().Truncate(time.Second)}
	if err := s.PutBalance(want); err != nil {
		t.Fatalf("unexpected error writing balance: %v", err)
	}

	got, err := s.GetBalance("0xabc")
	if err != nil {
		t.Fatalf("unexpected error reading balance: %v", err)
	}
	if got.Wei != want.Wei || got.Height != want.Height {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestGetBalanceMissing(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer s.Close()

	if _, err := s.GetBalance("0xnotfound"); err == nil {
		t.Fatalf("expected error for missing balance")
	}
}

func TestCount(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("unexpected error opening store: %v", err)
	}
	defer s.Close()

	for _, addr := range []string{"0x1", "0x2", "0x3"} {
		if err := s.PutBalance(Balance{Address: addr}); err != nil {
			t.Fatalf("unexpected error writing balance: %v", err)
		}
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("unexpected error counting: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 balances, got %d", n)
	}
}
