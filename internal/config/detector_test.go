package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func watchedFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "Logger.xml")
	if err := os.WriteFile(p, []byte("<Logger/>"), 0o600); err != nil {
		t.Fatalf("write watched file: %v", err)
	}
	return p
}

func TestCheck_FirstObservationIsModified(t *testing.T) {
	p := watchedFile(t)
	var d ChangeDetector

	result, stamp := d.Check(p)
	if result != FileModified {
		t.Fatalf("first Check: got %v, want FileModified", result)
	}
	if (stamp == ModTime{}) {
		t.Error("first Check returned a zero stamp for an existing file")
	}
}

func TestCheck_UnchangedAfterRecord(t *testing.T) {
	p := watchedFile(t)
	var d ChangeDetector

	result, stamp := d.Check(p)
	if result != FileModified {
		t.Fatalf("first Check: got %v, want FileModified", result)
	}
	d.Record(stamp)

	for i := 0; i < 3; i++ {
		if result, _ := d.Check(p); result != FileUnchanged {
			t.Fatalf("Check #%d after Record: got %v, want FileUnchanged", i+2, result)
		}
	}
}

func TestCheck_DetectsModification(t *testing.T) {
	p := watchedFile(t)
	var d ChangeDetector

	_, stamp := d.Check(p)
	d.Record(stamp)

	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(p, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	result, next := d.Check(p)
	if result != FileModified {
		t.Fatalf("Check after mtime change: got %v, want FileModified", result)
	}
	if next == stamp {
		t.Error("observed stamp did not change with the file's mtime")
	}
}

func TestCheck_SubSecondChangeDetected(t *testing.T) {
	p := watchedFile(t)
	var d ChangeDetector

	base := time.Unix(1_700_000_000, 100_000_000)
	if err := os.Chtimes(p, base, base); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	_, stamp := d.Check(p)
	d.Record(stamp)

	// Same whole second, different sub-second component.
	bumped := time.Unix(1_700_000_000, 200_000_000)
	if err := os.Chtimes(p, bumped, bumped); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if result, _ := d.Check(p); result != FileModified {
		t.Errorf("Check after sub-second mtime change: got %v, want FileModified", result)
	}
}

func TestCheck_MissingFileResetsBaseline(t *testing.T) {
	p := watchedFile(t)
	var d ChangeDetector

	_, stamp := d.Check(p)
	d.Record(stamp)

	if err := os.Remove(p); err != nil {
		t.Fatalf("remove watched file: %v", err)
	}

	result, _ := d.Check(p)
	if result != FileMissing {
		t.Fatalf("Check on missing file: got %v, want FileMissing", result)
	}

	// Re-creating the file with the old mtime must still look modified,
	// because the missing observation zeroed the baseline.
	if err := os.WriteFile(p, []byte("<Logger/>"), 0o600); err != nil {
		t.Fatalf("recreate watched file: %v", err)
	}
	old := time.Unix(stamp.Sec, stamp.Nsec)
	if err := os.Chtimes(p, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if result, _ := d.Check(p); result != FileModified {
		t.Errorf("Check after recreate: got %v, want FileModified", result)
	}
}
