// Package assets partitions an artist's files by role and selects the hero
// image, gallery set, biography, and CV.
//
// Selection works on file references only; no bytes are read here. The hero
// is chosen by a filename priority rule (hero. > cover. > portrait. >
// profile.) with lexicographic tie-breaking, the gallery is every other
// image in discovery order, the biography is the first match, and CVs
// prefer PDF over other formats.
package assets
