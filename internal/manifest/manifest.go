package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// manifestHeader is the fixed column order of the publish catalog. The
// dance_styles and social_* columns have no source data and stay empty for
// manual curation after import.
var manifestHeader = []string{
	"slug", "name", "country", "organization",
	"dance_styles", "social_instagram", "social_facebook", "social_youtube",
	"hero_path", "bio_path", "cv_path", "gallery_glob",
}

var reportHeader = []string{
	"slug", "name", "country", "organization",
	"hero", "bio", "cv", "num_photos", "notes",
}

// Known report notes.
const (
	NoteNoHero = "no_hero"
	NoteNoBio  = "no_bio"
	NoteNoCV   = "no_cv"
	NoteFailed = "failed"
)

// Row is one artist in the publish catalog. Path fields are empty strings
// when the asset is absent.
type Row struct {
	Slug         string
	Name         string
	Country      string
	Organization string
	HeroPath     string
	BioPath      string
	CVPath       string
	GalleryGlob  string
}

// ReportRow is one artist in the diagnostics report. Hero, Bio, and CV
// hold base filenames rather than full paths.
type ReportRow struct {
	Slug         string
	Name         string
	Country      string
	Organization string
	Hero         string
	Bio          string
	CV           string
	NumPhotos    int
	Notes        []string
}

// Builder collects rows for both tables over a run.
type Builder struct {
	rows   []Row
	report []ReportRow
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a catalog row.
func (b *Builder) Add(row Row) {
	b.rows = append(b.rows, row)
}

// AddReport appends a diagnostics row.
func (b *Builder) AddReport(row ReportRow) {
	b.report = append(b.report, row)
}

// Len returns the number of catalog rows collected.
func (b *Builder) Len() int {
	return len(b.rows)
}

// ManifestCSV serializes the publish catalog, sorted by the concatenation
// of country, organization, and name.
func (b *Builder) ManifestCSV() ([]byte, error) {
	rows := make([]Row, len(b.rows))
	copy(rows, b.rows)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Country+rows[i].Organization+rows[i].Name <
			rows[j].Country+rows[j].Organization+rows[j].Name
	})

	records := make([][]string, 0, len(rows)+1)
	records = append(records, manifestHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.Slug, row.Name, row.Country, row.Organization,
			"", "", "", "",
			row.HeroPath, row.BioPath, row.CVPath, row.GalleryGlob,
		})
	}
	return encodeCSV(records)
}

// ReportCSV serializes the diagnostics report in insertion order with the
// fixed header prepended. Absent organizations render as "(none)" and
// notes join with semicolons.
func (b *Builder) ReportCSV() ([]byte, error) {
	records := make([][]string, 0, len(b.report)+1)
	records = append(records, reportHeader)
	for _, row := range b.report {
		organization := row.Organization
		if organization == "" {
			organization = "(none)"
		}
		records = append(records, []string{
			row.Slug, row.Name, row.Country, organization,
			row.Hero, row.Bio, row.CV,
			strconv.Itoa(row.NumPhotos),
			strings.Join(row.Notes, ";"),
		})
	}
	return encodeCSV(records)
}

func encodeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
