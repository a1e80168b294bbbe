// Package classify discovers artist records inside an extracted source
// archive.
//
// Source trees are loosely organized as country / organization / artist or
// country / artist. The classifier resolves country folder names through
// the alias table, recognizes known organization folders per country
// (case-insensitive), treats unrecognized country-level folders as stray
// artists, and rejects any candidate directory without at least one
// reachable file. Each accepted directory becomes an immutable Bucket that
// downstream asset selection and manifest building consume.
//
// Folder roles are modeled explicitly (Role) so each classification rule
// can be exercised on its own in tests.
package classify
