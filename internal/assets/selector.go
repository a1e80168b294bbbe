package assets

import (
	"path/filepath"
	"sort"
	"strings"

	"artpack/internal/config"
)

// Extensions maps lowercase file extensions to asset roles. Build once from
// config and pass explicitly.
type Extensions struct {
	Image map[string]struct{}
	Bio   map[string]struct{}
	CV    map[string]struct{}
}

// NewExtensions converts the catalog extension lists into lookup sets.
func NewExtensions(catalog config.Catalog) Extensions {
	return Extensions{
		Image: extensionSet(catalog.ImageExts),
		Bio:   extensionSet(catalog.BioExts),
		CV:    extensionSet(catalog.CVExts),
	}
}

func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[ext] = struct{}{}
	}
	return set
}

func (e Extensions) matches(set map[string]struct{}, file string) bool {
	_, ok := set[strings.ToLower(filepath.Ext(file))]
	return ok
}

// Selection holds the per-artist resolved asset references. Hero is never a
// member of Gallery; Bio and CV are empty when no candidate exists.
type Selection struct {
	Hero    string
	Gallery []string
	Bio     string
	CV      string
}

// heroPriority scores an image filename for hero selection. Higher wins;
// names without a recognized prefix score zero and compete on filename
// order alone.
func heroPriority(file string) int {
	name := strings.ToLower(filepath.Base(file))
	switch {
	case strings.HasPrefix(name, "hero."):
		return 4
	case strings.HasPrefix(name, "cover."):
		return 3
	case strings.HasPrefix(name, "portrait."):
		return 2
	case strings.HasPrefix(name, "profile."):
		return 1
	default:
		return 0
	}
}

// pickHero returns the highest-priority image, breaking ties
// lexicographically, or "" when images is empty. The input slice is left
// untouched; scoring sorts a copy so gallery order stays discovery order.
func pickHero(images []string) string {
	if len(images) == 0 {
		return ""
	}
	ranked := make([]string, len(images))
	copy(ranked, images)
	sort.Slice(ranked, func(i, j int) bool {
		pi, pj := heroPriority(ranked[i]), heroPriority(ranked[j])
		if pi != pj {
			return pi > pj
		}
		return ranked[i] < ranked[j]
	})
	return ranked[0]
}

// Select classifies files (discovery order) by extension and resolves the
// artist's assets. Unclassified files are ignored.
func Select(files []string, exts Extensions) Selection {
	var images, bios, cvs []string
	for _, file := range files {
		switch {
		case exts.matches(exts.Image, file):
			images = append(images, file)
		case exts.matches(exts.Bio, file):
			bios = append(bios, file)
		case exts.matches(exts.CV, file):
			cvs = append(cvs, file)
		}
	}

	sel := Selection{Hero: pickHero(images)}
	for _, img := range images {
		if img != sel.Hero {
			sel.Gallery = append(sel.Gallery, img)
		}
	}
	if len(bios) > 0 {
		sel.Bio = bios[0]
	}
	sel.CV = pickCV(cvs)
	return sel
}

// pickCV prefers a PDF; otherwise the first candidate wins.
func pickCV(cvs []string) string {
	for _, cv := range cvs {
		if strings.HasSuffix(strings.ToLower(cv), ".pdf") {
			return cv
		}
	}
	if len(cvs) > 0 {
		return cvs[0]
	}
	return ""
}
