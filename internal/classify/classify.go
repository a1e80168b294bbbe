package classify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"artpack/internal/config"
	"artpack/internal/fileutil"
	"artpack/internal/logging"
	"artpack/internal/naming"
)

// artistScanDepth bounds the file-presence probe for candidate artist
// directories: a directory counts as an artist only if a regular file
// exists within this many levels.
const artistScanDepth = 2

// metadataDirs are platform sidecar folders that never carry artist data.
var metadataDirs = map[string]struct{}{
	"__MACOSX": {},
}

// Role describes what a folder represents within the source tree.
type Role int

const (
	RoleCountry Role = iota
	RoleOrganization
	RoleStrayArtist
	RoleArtist
)

func (r Role) String() string {
	switch r {
	case RoleCountry:
		return "country"
	case RoleOrganization:
		return "organization"
	case RoleStrayArtist:
		return "stray-artist"
	case RoleArtist:
		return "artist"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Rules holds the immutable lookup tables driving classification. Build it
// once from config and pass it explicitly; nothing here is ambient state.
type Rules struct {
	ValidCountries map[string]struct{}
	CountryAliases map[string]string
	Organizations  map[string]map[string]struct{}
}

// NewRules converts the catalog configuration into lookup sets.
func NewRules(catalog config.Catalog) Rules {
	rules := Rules{
		ValidCountries: make(map[string]struct{}, len(catalog.ValidCountries)),
		CountryAliases: make(map[string]string, len(catalog.CountryAliases)),
		Organizations:  make(map[string]map[string]struct{}, len(catalog.Organizations)),
	}
	for _, country := range catalog.ValidCountries {
		rules.ValidCountries[country] = struct{}{}
	}
	for alias, target := range catalog.CountryAliases {
		rules.CountryAliases[alias] = target
	}
	for country, names := range catalog.Organizations {
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			set[name] = struct{}{}
		}
		rules.Organizations[country] = set
	}
	return rules
}

// organizationsFor returns the recognized organization set for a country
// key, or nil when the country has none.
func (r Rules) organizationsFor(country string) map[string]struct{} {
	return r.Organizations[country]
}

// Bucket is one discovered artist record. Instances are immutable once
// returned from Scan.
type Bucket struct {
	CountryKey   string
	Organization string // empty for stray and organization-less artists
	SourcePath   string
}

// FindRoot descends through single-child directory chains, ignoring
// platform metadata folders, and returns the first directory with real
// fan-out. Some archive exports nest their payload under one folder.
func FindRoot(dir string) (string, error) {
	for {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("read dir %q: %w", dir, err)
		}
		real := entries[:0:0]
		for _, entry := range entries {
			if _, skip := metadataDirs[entry.Name()]; skip {
				continue
			}
			real = append(real, entry)
		}
		if len(real) == 1 && real[0].IsDir() {
			dir = filepath.Join(dir, real[0].Name())
			continue
		}
		return dir, nil
	}
}

// Scan walks root per the country/(organization)/artist layout and returns
// every accepted artist bucket. Unknown country folders and candidate
// directories without reachable files are skipped with a warn log.
func Scan(root string, rules Rules, logger *slog.Logger) ([]Bucket, error) {
	logger = logging.NewComponentLogger(logger, "classifier")

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read root %q: %w", root, err)
	}

	var buckets []Bucket
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		countryKey := naming.NormalizeCountry(entry.Name(), rules.CountryAliases)
		if _, ok := rules.ValidCountries[countryKey]; !ok {
			logger.Warn("skipping unknown country folder",
				logging.String("folder", entry.Name()),
				logging.String("normalized", countryKey),
			)
			continue
		}
		countryBuckets, err := scanCountry(filepath.Join(root, entry.Name()), countryKey, rules, logger)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, countryBuckets...)
	}
	return buckets, nil
}

func scanCountry(countryPath, countryKey string, rules Rules, logger *slog.Logger) ([]Bucket, error) {
	entries, err := os.ReadDir(countryPath)
	if err != nil {
		return nil, fmt.Errorf("read country dir %q: %w", countryPath, err)
	}

	dirs := entries[:0:0]
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)
		}
	}

	anyRecognized := false
	for _, dir := range dirs {
		if roleOf(dir.Name(), countryKey, rules) == RoleOrganization {
			anyRecognized = true
			break
		}
	}

	var buckets []Bucket
	for _, dir := range dirs {
		path := filepath.Join(countryPath, dir.Name())
		role := roleOf(dir.Name(), countryKey, rules)
		if !anyRecognized {
			// Without any recognized organization every folder is an
			// artist candidate.
			role = RoleArtist
		}
		switch role {
		case RoleOrganization:
			orgBuckets, err := scanOrganization(path, countryKey, strings.ToLower(dir.Name()), logger)
			if err != nil {
				return nil, err
			}
			buckets = append(buckets, orgBuckets...)
		case RoleStrayArtist, RoleArtist:
			bucket, ok, err := artistBucket(path, countryKey, "", logger)
			if err != nil {
				return nil, err
			}
			if ok {
				buckets = append(buckets, bucket)
			}
		}
	}
	return buckets, nil
}

func scanOrganization(orgPath, countryKey, orgName string, logger *slog.Logger) ([]Bucket, error) {
	entries, err := os.ReadDir(orgPath)
	if err != nil {
		return nil, fmt.Errorf("read organization dir %q: %w", orgPath, err)
	}

	var buckets []Bucket
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bucket, ok, err := artistBucket(filepath.Join(orgPath, entry.Name()), countryKey, orgName, logger)
		if err != nil {
			return nil, err
		}
		if ok {
			buckets = append(buckets, bucket)
		}
	}
	return buckets, nil
}

func artistBucket(path, countryKey, orgName string, logger *slog.Logger) (Bucket, bool, error) {
	hasFiles, err := fileutil.HasFileWithin(path, artistScanDepth)
	if err != nil {
		return Bucket{}, false, fmt.Errorf("probe artist dir %q: %w", path, err)
	}
	if !hasFiles {
		logger.Warn("skipping artist folder without files", logging.String("path", path))
		return Bucket{}, false, nil
	}
	return Bucket{CountryKey: countryKey, Organization: orgName, SourcePath: path}, true, nil
}

// roleOf decides what a single country-level folder represents, assuming at
// least one recognized organization is present in the country.
func roleOf(folderName, countryKey string, rules Rules) Role {
	orgs := rules.organizationsFor(countryKey)
	if orgs != nil {
		if _, ok := orgs[strings.ToLower(folderName)]; ok {
			return RoleOrganization
		}
	}
	return RoleStrayArtist
}
