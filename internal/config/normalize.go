package config

import (
	"fmt"
	"strings"
)

// Normalize expands paths, fills defaulted names, and lowercases every
// catalog key so classification lookups are case-insensitive. Exposed so
// tests can prepare hand-built configs the same way Load does.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeCatalog()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() error {
	archive := strings.TrimSpace(c.Source.Archive)
	if archive == "" {
		c.Source.Archive = ""
		return nil
	}
	expanded, err := expandPath(archive)
	if err != nil {
		return fmt.Errorf("source.archive: %w", err)
	}
	c.Source.Archive = expanded
	return nil
}

func (c *Config) normalizeOutput() {
	if strings.TrimSpace(c.Output.ArchiveName) == "" {
		c.Output.ArchiveName = defaultArchiveName
	}
	if strings.TrimSpace(c.Output.ManifestName) == "" {
		c.Output.ManifestName = defaultManifestName
	}
	if strings.TrimSpace(c.Output.ReportName) == "" {
		c.Output.ReportName = defaultReportName
	}
	if c.Output.MaxImageSide == 0 {
		c.Output.MaxImageSide = defaultMaxImageSide
	}
	if c.Output.JPEGQuality == 0 {
		c.Output.JPEGQuality = defaultJPEGQuality
	}
}

func (c *Config) normalizeCatalog() {
	for i, country := range c.Catalog.ValidCountries {
		c.Catalog.ValidCountries[i] = strings.ToLower(strings.TrimSpace(country))
	}

	aliases := make(map[string]string, len(c.Catalog.CountryAliases))
	for alias, target := range c.Catalog.CountryAliases {
		aliases[strings.ToLower(strings.TrimSpace(alias))] = strings.ToLower(strings.TrimSpace(target))
	}
	c.Catalog.CountryAliases = aliases

	orgs := make(map[string][]string, len(c.Catalog.Organizations))
	for country, names := range c.Catalog.Organizations {
		lowered := make([]string, len(names))
		for i, name := range names {
			lowered[i] = strings.ToLower(strings.TrimSpace(name))
		}
		orgs[strings.ToLower(strings.TrimSpace(country))] = lowered
	}
	c.Catalog.Organizations = orgs

	c.Catalog.ImageExts = normalizeExtensions(c.Catalog.ImageExts)
	c.Catalog.BioExts = normalizeExtensions(c.Catalog.BioExts)
	c.Catalog.CVExts = normalizeExtensions(c.Catalog.CVExts)
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
