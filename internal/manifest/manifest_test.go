package manifest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/brickscope/brickscope/internal/distribution"
)

func testManifest() Manifest {
	seed := int64(42)
	return New(
		&seed,
		3,
		[]distribution.Pair{
			{PartID: "3001", ColorID: "4"},
			{PartID: "3003", ColorID: "1"},
			{PartID: "3001", ColorID: "4"},
		},
		map[string]int{"3001": 2, "3003": 1},
		map[string]int{"4": 2, "1": 1},
	)
}

func TestNewAssignsRunIDAndTimestamp(t *testing.T) {
	m := testManifest()
	if m.RunID == "" {
		t.Fatal("expected run id")
	}
	if m.CreatedAt == "" {
		t.Fatal("expected created_at timestamp")
	}
	if m.RunID == testManifest().RunID {
		t.Fatal("expected unique run ids")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := testManifest()

	path, err := Write(t.TempDir(), m, false)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(path, "manifest.json") {
		t.Fatalf("path = %q, want manifest.json suffix", path)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip = %+v, want %+v", got, m)
	}
}

func TestWriteReadCompressedRoundTrip(t *testing.T) {
	m := testManifest()

	path, err := Write(t.TempDir(), m, true)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(path, "manifest.json.zst") {
		t.Fatalf("path = %q, want manifest.json.zst suffix", path)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("round trip = %+v, want %+v", got, m)
	}
}

func TestWriteRejectsEmptyRunID(t *testing.T) {
	if _, err := Write(t.TempDir(), Manifest{}, false); err == nil {
		t.Fatal("expected missing run id error")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(t.TempDir() + "/absent.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
