package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func touch(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.eft"), "x")
	touch(t, filepath.Join(dir, "a.eft"), "x")
	touch(t, filepath.Join(dir, "c.an2"), "x")
	touch(t, filepath.Join(dir, "notes.txt"), "x")
	if err := os.Mkdir(filepath.Join(dir, "dir.eft"), 0755); err != nil {
		t.Fatal(err)
	}

	fm := NewFileManager(dir, t.TempDir())
	got, err := fm.DiscoverInputFiles([]string{"*.eft", "*.an2", "a.*"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.eft"),
		filepath.Join(dir, "b.eft"),
		filepath.Join(dir, "c.an2"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiscoverInputFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverInputFilesDefaultPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "one.eft"), "x")
	touch(t, filepath.Join(dir, "two.nist"), "x")

	got, err := NewFileManager(dir, "").DiscoverInputFiles(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "one.eft")}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverInputFilesBadPattern(t *testing.T) {
	if _, err := NewFileManager(t.TempDir(), "").DiscoverInputFiles([]string{"["}); err == nil {
		t.Fatal("expected an error for a malformed pattern")
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.eft")
	touch(t, path, "1.001:10\x1d")

	data, err := ReadInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1.001:10\x1d" {
		t.Errorf("ReadInput = %q", data)
	}

	if _, err := ReadInput(dir); err == nil {
		t.Error("expected an error for a directory")
	}
	if _, err := ReadInput(filepath.Join(dir, "missing.eft")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEnsureDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")
	if err := NewFileManager("", out).EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		t.Fatalf("output directory not created: %v", err)
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	tests := []struct {
		name   string
		format string
		params map[string]string
		ext    string
		want   string
	}{
		{"name and run id", "{name}_{uuid}", map[string]string{"name": "subject", "uuid": "run1"}, ".xml", "subject_run1.xml"},
		{"extension kept", "{name}.XML", map[string]string{"name": "s"}, ".xml", "s.XML"},
		{"no extension", "{name}", map[string]string{"name": "s"}, "", "s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateOutputFileName(tt.format, tt.params, tt.ext); got != tt.want {
				t.Errorf("GenerateOutputFileName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateOutputFileNameTimePlaceholders(t *testing.T) {
	got := GenerateOutputFileName("{date}-{time}-{timestamp}-{uuid}", nil, ".xlsx")
	if strings.Contains(got, "{") {
		t.Fatalf("placeholder left in %q", got)
	}
	if !strings.HasSuffix(got, ".xlsx") {
		t.Errorf("missing extension in %q", got)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName(filepath.Join("in", "subject.01.eft")); got != "subject.01" {
		t.Errorf("BaseName = %q", got)
	}
}

func TestWriteWarningLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteWarningLog(nil, dir, "run")
	if err != nil || path != "" {
		t.Fatalf("empty log: path %q, err %v", path, err)
	}

	entries := []WarningLogEntry{
		{Timestamp: time.Now(), FileName: "a.eft", Message: "Record 2: unsupported record type 9"},
		{Timestamp: time.Now(), FileName: "b.eft", Message: "input is empty", Failed: true},
	}
	path, err = WriteWarningLog(entries, dir, "run1")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "warnings_run1.txt" {
		t.Errorf("log path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Run ID:    run1",
		"Entries:   2",
		"Warning #1",
		"Record 2: unsupported record type 9",
		"Failure #2",
		"End of Warning Log",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("warning log missing %q", want)
		}
	}
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	summary := RunSummary{RunID: "run2", StartTime: start, EndTime: start.Add(2 * time.Second), TotalFiles: 2}
	summary.Add(DecodedFileInfo{InputFile: "in/a.eft", OutputFile: "out/a.xml", Records: 4, Fingerprints: 2, Warnings: 1})
	summary.AddFailure(FailedFileInfo{InputFile: "in/b.eft", ErrorMessage: "input is empty"})

	if summary.DecodedFiles != 1 || summary.FailedFiles != 1 || summary.TotalRecords != 4 ||
		summary.TotalFingerprints != 2 || summary.TotalWarnings != 1 {
		t.Fatalf("summary totals = %+v", summary)
	}

	path, err := WriteSummaryLog(summary, dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Run ID:         run2",
		"Duration:       2s",
		"Records:        4",
		"Output:       out/a.xml",
		"a.eft",
		"Error: input is empty",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("summary missing %q", want)
		}
	}
}
