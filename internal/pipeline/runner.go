package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"artpack/internal/archive"
	"artpack/internal/assets"
	"artpack/internal/classify"
	"artpack/internal/config"
	"artpack/internal/fileutil"
	"artpack/internal/logging"
	"artpack/internal/manifest"
	"artpack/internal/naming"
	"artpack/internal/runlog"
	"artpack/internal/services"
	"artpack/internal/transcode"
)

// ImageEncoder converts a source image file into bounded JPEG bytes.
// Satisfied by transcode.Encoder; tests inject stubs.
type ImageEncoder interface {
	EncodeJPEG(path string) ([]byte, error)
}

// Runner executes import runs.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	encoder ImageEncoder
	ledger  *runlog.Store
	rules   classify.Rules
	exts    assets.Extensions
}

// NewRunner constructs a runner with the default image encoder and no run
// ledger.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	return NewRunnerWithDependencies(cfg, logger, transcode.NewEncoder(cfg), nil)
}

// NewRunnerWithDependencies allows injecting collaborators (used in tests
// and by the CLI to attach the run ledger).
func NewRunnerWithDependencies(cfg *config.Config, logger *slog.Logger, encoder ImageEncoder, ledger *runlog.Store) *Runner {
	return &Runner{
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		encoder: encoder,
		ledger:  ledger,
		rules:   classify.NewRules(cfg.Catalog),
		exts:    assets.NewExtensions(cfg.Catalog),
	}
}

// ArtistStatus summarizes one processed artist for terminal output.
type ArtistStatus struct {
	Slug         string
	Name         string
	Country      string
	Organization string
	Photos       int
	Notes        []string
}

// Result describes a completed run.
type Result struct {
	RunID         string
	SourceArchive string
	OutputArchive string
	ManifestPath  string
	ReportPath    string
	Artists       int
	Photos        int
	Failures      int
	Summary       []ArtistStatus
}

// Run executes the import for the given source archive.
func (r *Runner) Run(ctx context.Context, archivePath string) (*Result, error) {
	started := time.Now()
	logger := r.logger

	if strings.TrimSpace(archivePath) == "" {
		return nil, services.Wrap(services.ErrValidation, "cleaning", "resolve input",
			"No source archive given; pass one as an argument or set source.archive in config", nil)
	}
	if _, err := os.Stat(archivePath); err != nil {
		return nil, services.Wrap(services.ErrValidation, "cleaning", "resolve input",
			fmt.Sprintf("Source archive %s is not readable", archivePath), err)
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cleaning", "prepare directories", "Failed to create working directories", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.StagingDir, "artpack.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "cleaning", "acquire lock", "Failed to acquire staging lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "cleaning", "acquire lock",
			"Another import is already running against this staging directory", nil)
	}
	defer func() { _ = lock.Unlock() }()

	workDir, err := os.MkdirTemp(r.cfg.Paths.StagingDir, "extract-")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "cleaning", "create staging dir", "Failed to create extraction directory", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	logger.Info("extracting source archive",
		logging.String("archive", archivePath),
		logging.String("staging", workDir),
	)
	if err := archive.ExtractZip(archivePath, workDir); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "cleaning", "extract archive",
			fmt.Sprintf("Failed to extract %s", archivePath), err)
	}

	root, err := classify.FindRoot(workDir)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "cleaning", "locate tree root", "Failed to locate the archive payload root", err)
	}

	buckets, err := classify.Scan(root, r.rules, r.logger)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "cleaning", "classify directories", "Failed to classify artist directories", err)
	}
	logger.Info("classification complete", logging.Int("artists", len(buckets)))

	outPath := filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Output.ArchiveName)
	writer, err := archive.NewWriter(outPath)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "cleaning", "open output archive", "Failed to create the output archive", err)
	}

	result := &Result{
		RunID:         uuid.NewString(),
		SourceArchive: archivePath,
		OutputArchive: outPath,
		ManifestPath:  filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Output.ManifestName),
		ReportPath:    filepath.Join(r.cfg.Paths.OutputDir, r.cfg.Output.ReportName),
	}
	builder := manifest.NewBuilder()

	for _, bucket := range buckets {
		if err := ctx.Err(); err != nil {
			_ = writer.Close()
			return nil, err
		}
		status, err := r.processArtist(bucket, writer, builder)
		if err != nil {
			result.Failures++
			logger.Error("artist processing failed",
				logging.String("path", bucket.SourcePath),
				logging.Error(err),
			)
			builder.AddReport(manifest.ReportRow{
				Slug:         status.Slug,
				Name:         status.Name,
				Country:      bucket.CountryKey,
				Organization: bucket.Organization,
				Notes:        []string{manifest.NoteFailed},
			})
			status.Notes = []string{manifest.NoteFailed}
			result.Summary = append(result.Summary, status)
			continue
		}
		result.Artists++
		result.Photos += status.Photos
		result.Summary = append(result.Summary, status)
	}

	if err := r.finalize(writer, builder, result); err != nil {
		return nil, err
	}

	finished := time.Now()
	if r.ledger != nil {
		run := runlog.Run{
			ID:            result.RunID,
			SourceArchive: result.SourceArchive,
			OutputArchive: result.OutputArchive,
			ManifestPath:  result.ManifestPath,
			ReportPath:    result.ReportPath,
			StartedAt:     started,
			FinishedAt:    finished,
			Artists:       result.Artists,
			Photos:        result.Photos,
			Failures:      result.Failures,
		}
		if err := r.ledger.Record(ctx, run); err != nil {
			logger.Warn("failed to record run in ledger", logging.Error(err))
		}
	}

	logger.Info("import complete",
		logging.String("archive", result.OutputArchive),
		logging.String("manifest", result.ManifestPath),
		logging.String("report", result.ReportPath),
		logging.Int("artists", result.Artists),
		logging.Int("photos", result.Photos),
		logging.Int("failures", result.Failures),
		logging.Duration("elapsed", finished.Sub(started)),
	)
	return result, nil
}

// finalize embeds both tables in the archive, closes it, and mirrors the
// tables next to the archive on disk.
func (r *Runner) finalize(writer *archive.Writer, builder *manifest.Builder, result *Result) error {
	manifestCSV, err := builder.ManifestCSV()
	if err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "build manifest", "Failed to serialize the publish manifest", err)
	}
	reportCSV, err := builder.ReportCSV()
	if err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "build report", "Failed to serialize the import report", err)
	}

	if err := writer.Add(r.cfg.Output.ManifestName, manifestCSV); err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "embed manifest", "Failed to add the manifest to the archive", err)
	}
	if err := writer.Add(r.cfg.Output.ReportName, reportCSV); err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "embed report", "Failed to add the report to the archive", err)
	}
	if err := writer.Close(); err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "close output archive", "Failed to finalize the output archive", err)
	}

	if err := os.WriteFile(result.ManifestPath, manifestCSV, 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "write manifest", "Failed to write the manifest CSV", err)
	}
	if err := os.WriteFile(result.ReportPath, reportCSV, 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "cleaning", "write report", "Failed to write the report CSV", err)
	}
	return nil
}

// processArtist resolves and writes one artist's assets and appends the
// manifest and report rows. The returned status is valid even on error so
// the caller can report the failure.
func (r *Runner) processArtist(bucket classify.Bucket, writer *archive.Writer, builder *manifest.Builder) (ArtistStatus, error) {
	display := naming.DisplayName(filepath.Base(bucket.SourcePath))
	slug := naming.Slugify(display)
	status := ArtistStatus{
		Slug:         slug,
		Name:         display,
		Country:      bucket.CountryKey,
		Organization: bucket.Organization,
	}

	files, err := fileutil.ListFiles(bucket.SourcePath)
	if err != nil {
		return status, fmt.Errorf("list artist files: %w", err)
	}
	sel := assets.Select(files, r.exts)

	base := path.Join(bucket.CountryKey, slug)
	if bucket.Organization != "" {
		base = path.Join(bucket.CountryKey, bucket.Organization, slug)
	}

	heroRel := ""
	if sel.Hero != "" {
		data, err := r.encoder.EncodeJPEG(sel.Hero)
		if err != nil {
			return status, fmt.Errorf("encode hero %q: %w", sel.Hero, err)
		}
		heroRel = base + "/hero.jpg"
		if err := writer.Add(heroRel, data); err != nil {
			return status, err
		}
	}

	photos := 0
	for _, img := range sel.Gallery {
		data, err := r.encoder.EncodeJPEG(img)
		if err != nil {
			return status, fmt.Errorf("encode gallery image %q: %w", img, err)
		}
		stem := strings.TrimSuffix(filepath.Base(img), filepath.Ext(img))
		if err := writer.Add(base+"/photos/"+stem+".jpg", data); err != nil {
			return status, err
		}
		photos++
	}

	// No priority hero but images exist: promote the first one as hero as
	// well. It stays in the gallery, so its bytes land in the archive
	// twice. Matches the established output layout; see DESIGN.md before
	// changing.
	if heroRel == "" && len(sel.Gallery) > 0 {
		data, err := r.encoder.EncodeJPEG(sel.Gallery[0])
		if err != nil {
			return status, fmt.Errorf("encode promoted hero %q: %w", sel.Gallery[0], err)
		}
		heroRel = base + "/hero.jpg"
		if err := writer.Add(heroRel, data); err != nil {
			return status, err
		}
	}

	bioRel := ""
	if sel.Bio != "" {
		text, err := os.ReadFile(sel.Bio)
		if err != nil {
			return status, fmt.Errorf("read biography %q: %w", sel.Bio, err)
		}
		bioRel = base + "/bio.md"
		if err := writer.Add(bioRel, text); err != nil {
			return status, err
		}
	}

	cvRel := ""
	if sel.CV != "" {
		data, err := os.ReadFile(sel.CV)
		if err != nil {
			return status, fmt.Errorf("read cv %q: %w", sel.CV, err)
		}
		cvRel = base + "/cv" + strings.ToLower(filepath.Ext(sel.CV))
		if err := writer.Add(cvRel, data); err != nil {
			return status, err
		}
	}

	builder.Add(manifest.Row{
		Slug:         slug,
		Name:         display,
		Country:      naming.CapitalizeCountry(bucket.CountryKey),
		Organization: bucket.Organization,
		HeroPath:     heroRel,
		BioPath:      bioRel,
		CVPath:       cvRel,
		GalleryGlob:  base + "/photos/*",
	})

	var notes []string
	if heroRel == "" {
		notes = append(notes, manifest.NoteNoHero)
	}
	if bioRel == "" {
		notes = append(notes, manifest.NoteNoBio)
	}
	if cvRel == "" {
		notes = append(notes, manifest.NoteNoCV)
	}
	builder.AddReport(manifest.ReportRow{
		Slug:         slug,
		Name:         display,
		Country:      bucket.CountryKey,
		Organization: bucket.Organization,
		Hero:         baseName(heroRel),
		Bio:          baseName(bioRel),
		CV:           baseName(cvRel),
		NumPhotos:    photos,
		Notes:        notes,
	})

	status.Photos = photos
	status.Notes = notes
	return status, nil
}

// baseName is path.Base that maps "" to "" instead of ".".
func baseName(p string) string {
	if p == "" {
		return ""
	}
	return path.Base(p)
}
