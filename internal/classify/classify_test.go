package classify_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"artpack/internal/classify"
	"artpack/internal/config"
	"artpack/internal/logging"
)

func testRules() classify.Rules {
	return classify.NewRules(config.Catalog{
		ValidCountries: []string{"rwanda", "tanzania", "uganda"},
		CountryAliases: map[string]string{"uuganda": "uganda"},
		Organizations: map[string][]string{
			"uganda":   {"batalo-east", "soul-xpressions"},
			"tanzania": {"muda-africa"},
		},
	})
}

func mkArtist(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "photo.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scanSorted(t *testing.T, root string) []classify.Bucket {
	t.Helper()
	buckets, err := classify.Scan(root, testRules(), logging.NewNop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].SourcePath < buckets[j].SourcePath })
	return buckets
}

func TestScanFiltersCountriesThroughAliases(t *testing.T) {
	root := t.TempDir()
	mkArtist(t, filepath.Join(root, "Uuganda", "jean_pierre"))
	mkArtist(t, filepath.Join(root, "Kenya", "someone"))

	buckets := scanSorted(t, root)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %+v", buckets)
	}
	if buckets[0].CountryKey != "uganda" {
		t.Fatalf("alias not resolved: %+v", buckets[0])
	}
	if buckets[0].Organization != "" {
		t.Fatalf("expected no organization, got %q", buckets[0].Organization)
	}
}

func TestScanSplitsOrganizationsAndStrays(t *testing.T) {
	root := t.TempDir()
	mkArtist(t, filepath.Join(root, "uganda", "Batalo-East", "amina"))
	mkArtist(t, filepath.Join(root, "uganda", "Batalo-East", "okello"))
	mkArtist(t, filepath.Join(root, "uganda", "free_dancer"))

	buckets := scanSorted(t, root)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %+v", buckets)
	}

	var orgCount, strayCount int
	for _, b := range buckets {
		switch b.Organization {
		case "batalo-east":
			orgCount++
		case "":
			strayCount++
			if filepath.Base(b.SourcePath) != "free_dancer" {
				t.Fatalf("unexpected stray artist: %+v", b)
			}
		default:
			t.Fatalf("unexpected organization %q", b.Organization)
		}
	}
	if orgCount != 2 || strayCount != 1 {
		t.Fatalf("org=%d stray=%d, want 2/1", orgCount, strayCount)
	}
}

func TestScanWithoutRecognizedOrganizations(t *testing.T) {
	root := t.TempDir()
	// rwanda has a known org in real rules but not in this tree; every
	// folder is then a direct artist candidate.
	mkArtist(t, filepath.Join(root, "rwanda", "claudine"))
	mkArtist(t, filepath.Join(root, "rwanda", "eric_m"))

	buckets := scanSorted(t, root)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", buckets)
	}
	for _, b := range buckets {
		if b.Organization != "" {
			t.Fatalf("expected organization-less artists, got %+v", b)
		}
	}
}

func TestScanExcludesEmptyArtistDirs(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "uganda", "ghost", "empty", "deeper"), 0o755); err != nil {
		t.Fatal(err)
	}

	buckets := scanSorted(t, root)
	if len(buckets) != 0 {
		t.Fatalf("expected no buckets for empty tree, got %+v", buckets)
	}
}

func TestFindRootSkipsMetadataAndSingleChildChains(t *testing.T) {
	root := t.TempDir()
	payload := filepath.Join(root, "export-2025", "featured artists")
	mkArtist(t, filepath.Join(payload, "uganda", "amina"))
	mkArtist(t, filepath.Join(payload, "rwanda", "claudine"))
	if err := os.MkdirAll(filepath.Join(root, "__MACOSX"), 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := classify.FindRoot(root)
	if err != nil {
		t.Fatalf("FindRoot: %v", err)
	}
	if found != payload {
		t.Fatalf("FindRoot = %q, want %q", found, payload)
	}
}

func TestRoleStrings(t *testing.T) {
	roles := map[classify.Role]string{
		classify.RoleCountry:      "country",
		classify.RoleOrganization: "organization",
		classify.RoleStrayArtist:  "stray-artist",
		classify.RoleArtist:       "artist",
	}
	for role, want := range roles {
		if got := role.String(); got != want {
			t.Errorf("Role.String() = %q, want %q", got, want)
		}
	}
}
