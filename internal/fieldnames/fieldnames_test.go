package fieldnames

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupKnownFields(t *testing.T) {
	tests := map[string]string{
		"1.001":  "Record Length",
		"1.002":  "Version Number",
		"1.003":  "File Content",
		"1.007":  "Destination Agency",
		"1.008":  "Originating Agency",
		"14.011": "Compression Algorithm",
		"14.999": "Image Data",
	}
	d := Default()
	for id, want := range tests {
		got, ok := d.Lookup(id)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %q, %v, want %q", id, got, ok, want)
		}
	}
	if _, ok := d.Lookup("99.999"); ok {
		t.Error("Lookup(99.999) found a label")
	}
}

func TestName(t *testing.T) {
	d := Default()
	if got := d.Name(1, 2); got != "Version Number" {
		t.Errorf("Name(1, 2) = %q", got)
	}
	if got := d.Name(99, 999); got != "Field 999" {
		t.Errorf("Name(99, 999) = %q", got)
	}
}

func TestDisplayText(t *testing.T) {
	d := Default()
	if got := d.DisplayText("1.002"); got != "Version Number (1.002)" {
		t.Errorf("DisplayText(1.002) = %q", got)
	}
	if got := d.DisplayText("99.999"); got != "99.999" {
		t.Errorf("DisplayText(99.999) = %q", got)
	}
	if got := d.FieldDisplayText(4, 9); got != "Image Data (4.009)" {
		t.Errorf("FieldDisplayText(4, 9) = %q", got)
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"14.9", "14.009", true},
		{" 1.002 ", "1.002", true},
		{"2.1000", "2.1000", true},
		{"14", "", false},
		{"a.b", "", false},
		{"1.-2", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeID(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWithOverrides(t *testing.T) {
	base := Default()
	d, err := base.With(map[string]string{"2.30": " Case Number ", "1.002": "Version"})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if got := d.Name(2, 30); got != "Case Number" {
		t.Errorf("override Name(2, 30) = %q", got)
	}
	if got := d.Name(1, 2); got != "Version" {
		t.Errorf("override Name(1, 2) = %q", got)
	}
	if got := base.Name(1, 2); got != "Version Number" {
		t.Errorf("base table changed: Name(1, 2) = %q", got)
	}

	if _, err := base.With(map[string]string{"nope": "x"}); err == nil {
		t.Error("With accepted an invalid id")
	}
}

func TestIDsOrder(t *testing.T) {
	d, err := Default().With(map[string]string{"2.100": "x", "2.030": "y"})
	if err != nil {
		t.Fatal(err)
	}
	var twos []string
	for _, id := range d.IDs() {
		if id[:2] == "2." {
			twos = append(twos, id)
		}
	}
	want := []string{"2.001", "2.002", "2.030", "2.100"}
	if diff := cmp.Diff(want, twos); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
	if ids := d.IDs(); ids[0] != "1.001" || ids[len(ids)-1] != "14.999" {
		t.Errorf("IDs range = %s..%s", ids[0], ids[len(ids)-1])
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := "\"2.030\": Agency Case Number\n\"14.200\": Vendor Extension\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	want := map[string]string{"2.030": "Agency Case Number", "14.200": "Vendor Extension"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadYAML of a missing file succeeded")
	}
}
