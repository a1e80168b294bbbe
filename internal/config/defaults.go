package config

const (
	defaultStagingDir   = "~/.local/share/artpack/staging"
	defaultOutputDir    = "."
	defaultLogDir       = "~/.local/share/artpack/logs"
	defaultArchiveName  = "artists_cleaned.zip"
	defaultManifestName = "artists_manifest.csv"
	defaultReportName   = "import_report.csv"
	defaultMaxImageSide = 2000
	defaultJPEGQuality  = 82
	defaultLogFormat    = "auto"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults. The catalog
// defaults describe the archive layout this tool was built for; override
// them in config.toml when importing a differently organized export.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Output: Output{
			ArchiveName:  defaultArchiveName,
			ManifestName: defaultManifestName,
			ReportName:   defaultReportName,
			MaxImageSide: defaultMaxImageSide,
			JPEGQuality:  defaultJPEGQuality,
		},
		Catalog: Catalog{
			ValidCountries: []string{"rwanda", "tanzania", "uganda"},
			CountryAliases: map[string]string{"uuganda": "uganda"},
			Organizations: map[string][]string{
				"rwanda":   {"amizero-dance-kompagnie"},
				"tanzania": {"muda-africa"},
				"uganda":   {"batalo-east", "soul-xpressions"},
			},
			ImageExts: []string{".jpg", ".jpeg", ".png", ".webp"},
			BioExts:   []string{".md", ".txt", ".rtf"},
			CVExts:    []string{".pdf", ".doc", ".docx"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
