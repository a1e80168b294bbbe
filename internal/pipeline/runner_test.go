package pipeline_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artpack/internal/archive"
	"artpack/internal/logging"
	"artpack/internal/pipeline"
	"artpack/internal/runlog"
	"artpack/internal/services"
	"artpack/internal/testsupport"
)

// stubEncoder avoids real image decoding; pipeline tests exercise flow,
// not pixels.
type stubEncoder struct {
	failFor string
	calls   []string
}

func (s *stubEncoder) EncodeJPEG(path string) ([]byte, error) {
	s.calls = append(s.calls, path)
	if s.failFor != "" && strings.Contains(path, s.failFor) {
		return nil, errors.New("decode failure injected")
	}
	return []byte("jpeg:" + filepath.Base(path)), nil
}

func buildSourceArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.zip")
	writer, err := archive.NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for name, content := range entries {
		if err := writer.Add(name, []byte(content)); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func readZipNames(t *testing.T, path string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open output archive: %v", err)
	}
	defer reader.Close()
	entries := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", file.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("read entry %s: %v", file.Name, err)
		}
		rc.Close()
		entries[file.Name] = buf.String()
	}
	return entries
}

func parseCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return records
}

func TestRunProducesArchiveAndTables(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := buildSourceArchive(t, map[string]string{
		"export/uganda/batalo-east/jean_pierre/hero.jpg":   "h",
		"export/uganda/batalo-east/jean_pierre/stage.png":  "g",
		"export/uganda/batalo-east/jean_pierre/bio.txt":    "Jean dances.",
		"export/uganda/batalo-east/jean_pierre/cv.docx":    "docx",
		"export/uganda/batalo-east/jean_pierre/resume.pdf": "pdf",
		"export/uganda/free_dancer/portrait.jpg":           "p",
		"export/rwanda/claudine/moves.webp":                "m",
		"export/kenya/ignored/file.jpg":                    "x",
		"__MACOSX/export/._junk":                           "junk",
	})

	enc := &stubEncoder{}
	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), enc, nil)
	result, err := runner.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Artists != 3 || result.Failures != 0 {
		t.Fatalf("artists=%d failures=%d, want 3/0", result.Artists, result.Failures)
	}

	entries := readZipNames(t, result.OutputArchive)
	for _, want := range []string{
		"uganda/batalo-east/jean-pierre/hero.jpg",
		"uganda/batalo-east/jean-pierre/photos/stage.jpg",
		"uganda/batalo-east/jean-pierre/bio.md",
		"uganda/batalo-east/jean-pierre/cv.pdf",
		"uganda/free-dancer/hero.jpg",
		"rwanda/claudine/hero.jpg",
		cfg.Output.ManifestName,
		cfg.Output.ReportName,
	} {
		if _, ok := entries[want]; !ok {
			t.Errorf("output archive missing %q; have %v", want, keys(entries))
		}
	}
	if _, ok := entries["uganda/batalo-east/jean-pierre/cv.docx"]; ok {
		t.Error("docx CV written despite pdf candidate")
	}
	for name := range entries {
		if strings.Contains(name, "kenya") {
			t.Errorf("unknown country leaked into output: %s", name)
		}
	}
	if got := entries["uganda/batalo-east/jean-pierre/bio.md"]; got != "Jean dances." {
		t.Errorf("bio content = %q", got)
	}

	manifestRecords := parseCSVFile(t, result.ManifestPath)
	if len(manifestRecords) != 4 {
		t.Fatalf("manifest rows = %d, want header + 3", len(manifestRecords))
	}
	// Sorted by country+organization+name: Rwanda before Uganda.
	if manifestRecords[1][2] != "Rwanda" {
		t.Fatalf("manifest not sorted, first country %q", manifestRecords[1][2])
	}

	reportRecords := parseCSVFile(t, result.ReportPath)
	if len(reportRecords) != 4 {
		t.Fatalf("report rows = %d, want header + 3", len(reportRecords))
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestRunPromotesFallbackHeroIntoGalleryToo(t *testing.T) {
	// Only zero-priority images: the lexicographically-first one is chosen
	// as hero and removed from the gallery; the promotion branch stays
	// idle. This pins the established selection behavior end to end.
	cfg := testsupport.NewConfig(t)
	src := buildSourceArchive(t, map[string]string{
		"uganda/solo_act/zebra.jpg": "z",
		"import_notes.txt":          "batch 2",
		"uganda/solo_act/alpha.jpg": "a",
	})

	enc := &stubEncoder{}
	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), enc, nil)
	result, err := runner.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries := readZipNames(t, result.OutputArchive)
	if entries["uganda/solo-act/hero.jpg"] != "jpeg:alpha.jpg" {
		t.Fatalf("hero should be alpha.jpg, entries: %v", keys(entries))
	}
	if _, ok := entries["uganda/solo-act/photos/alpha.jpg"]; ok {
		t.Fatal("priority-selected hero must not also be in gallery")
	}
	if _, ok := entries["uganda/solo-act/photos/zebra.jpg"]; !ok {
		t.Fatal("remaining image missing from gallery")
	}
}

func TestRunReportsMissingAssets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := buildSourceArchive(t, map[string]string{
		"uganda/images_only/a.jpg": "a",
		"import_notes.txt":         "batch 2",
		"uganda/images_only/b.jpg": "b",
	})

	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), &stubEncoder{}, nil)
	result, err := runner.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	records := parseCSVFile(t, result.ReportPath)
	if len(records) != 2 {
		t.Fatalf("report rows = %d", len(records))
	}
	row := records[1]
	if row[8] != "no_bio;no_cv" {
		t.Fatalf("notes = %q, want no_bio;no_cv", row[8])
	}
	if row[4] == "" {
		t.Fatal("hero field should be non-empty for image-only artist")
	}
	if row[3] != "(none)" {
		t.Fatalf("organization = %q, want (none)", row[3])
	}
}

func TestRunIsolatesPerArtistFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := buildSourceArchive(t, map[string]string{
		"uganda/broken_artist/hero.jpg": "bad",
		"import_notes.txt":              "batch 2",
		"uganda/solid_artist/hero.jpg":  "good",
	})

	enc := &stubEncoder{failFor: "broken_artist"}
	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), enc, nil)
	result, err := runner.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run should not abort on one artist: %v", err)
	}

	if result.Artists != 1 || result.Failures != 1 {
		t.Fatalf("artists=%d failures=%d, want 1/1", result.Artists, result.Failures)
	}

	records := parseCSVFile(t, result.ReportPath)
	if len(records) != 3 {
		t.Fatalf("report rows = %d, want header + 2", len(records))
	}
	var failedNotes string
	for _, row := range records[1:] {
		if row[0] == "broken-artist" {
			failedNotes = row[8]
		}
	}
	if failedNotes != "failed" {
		t.Fatalf("failed artist notes = %q", failedNotes)
	}

	entries := readZipNames(t, result.OutputArchive)
	if _, ok := entries["uganda/solid-artist/hero.jpg"]; !ok {
		t.Fatal("healthy artist missing from output")
	}
}

func TestRunRecordsLedger(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ledger, err := runlog.Open(cfg)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer ledger.Close()

	src := buildSourceArchive(t, map[string]string{
		"uganda/amina/hero.jpg": "h",
		"import_notes.txt":      "batch 2",
	})

	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), &stubEncoder{}, ledger)
	result, err := runner.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	runs, err := ledger.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(runs))
	}
	if runs[0].ID != result.RunID || runs[0].Artists != 1 {
		t.Fatalf("ledger row mismatch: %+v vs result %+v", runs[0], result)
	}
}

func TestRunRejectsMissingArchive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), &stubEncoder{}, nil)

	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "nope.zip"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = runner.Run(context.Background(), "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty path, got %v", err)
	}
}

func TestRunEmptyArtistDirsExcluded(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// Zip directories only exist implicitly through file entries, so an
	// "empty" artist needs explicit directory entries.
	src := filepath.Join(t.TempDir(), "source.zip")
	file, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(file)
	for _, dir := range []string{"uganda/", "uganda/ghost/", "uganda/ghost/empty/"} {
		if _, err := zw.Create(dir); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := zw.Create("uganda/real/photo.jpg"); err != nil {
		t.Fatal(err)
	}
	if _, err := zw.Create("rwanda/solo/photo.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), &stubEncoder{}, nil)
	result, err := runner.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Artists != 2 {
		t.Fatalf("artists = %d, want only directories with files", result.Artists)
	}
	for _, status := range result.Summary {
		if status.Slug == "ghost" {
			t.Fatal("empty artist directory must be excluded")
		}
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := buildSourceArchive(t, map[string]string{
		"uganda/amina/hero.jpg": "h",
		"import_notes.txt":      "batch 2",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := pipeline.NewRunnerWithDependencies(cfg, logging.NewNop(), &stubEncoder{}, nil)
	if _, err := runner.Run(ctx, src); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
