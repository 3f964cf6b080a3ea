// Package pipeline runs a full deck build: scan the library, derive
// identifiers, transcode audio, compose and lay out cards, render the PDF,
// and emit the web bundle.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"trackdeck/internal/card"
	"trackdeck/internal/config"
	"trackdeck/internal/covers"
	"trackdeck/internal/deps"
	"trackdeck/internal/fileutil"
	"trackdeck/internal/ident"
	"trackdeck/internal/layout"
	"trackdeck/internal/logging"
	"trackdeck/internal/manifest"
	"trackdeck/internal/services"
	"trackdeck/internal/services/ffmpeg"
	"trackdeck/internal/services/inkscape"
	"trackdeck/internal/services/metaflac"
	"trackdeck/internal/stats"
	"trackdeck/internal/track"
)

// TrackLoader scans the source library.
type TrackLoader interface {
	LoadDir(ctx context.Context, dir string) ([]track.Track, error)
}

// Transcoder produces the anonymized published audio.
type Transcoder interface {
	Transcode(ctx context.Context, source, dest string) error
}

// CoverExtractor pulls embedded art out of a source file.
type CoverExtractor interface {
	ExtractCover(ctx context.Context, source, dest string) error
}

// Renderer turns page SVGs into the merged PDF.
type Renderer interface {
	Convert(ctx context.Context, source, dest string) error
	Merge(ctx context.Context, sources []string, dest string) error
}

// Pipeline coordinates one build run. Collaborator fields are interfaces so
// tests can run the full flow without the external tools.
type Pipeline struct {
	Config    *config.Config
	Logger    *slog.Logger
	Loader    TrackLoader
	Audio     Transcoder
	Covers    CoverExtractor
	Renderer  Renderer
	CheckDeps bool
}

// Result summarizes a completed run.
type Result struct {
	RunID        string
	Tracks       []track.Track
	Identifiers  []ident.Identifier
	Pages        []layout.Page
	Report       stats.Report
	PDFPath      string
	ManifestPath string
	PlayerPath   string
}

// New wires a pipeline with the real external tool clients.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	audioTimeout := time.Duration(cfg.Audio.TimeoutSeconds) * time.Second
	renderTimeout := time.Duration(cfg.Render.TimeoutSeconds) * time.Second
	ffmpegClient := ffmpeg.New(cfg.Audio.FFmpegBinary, cfg.Audio.Bitrate, audioTimeout)
	return &Pipeline{
		Config: cfg,
		Logger: logger,
		Loader: &track.Loader{
			Metaflac: metaflac.New(cfg.Audio.MetaflacBinary, audioTimeout),
			Logger:   logging.WithComponent(logger, "track"),
		},
		Audio:     ffmpegClient,
		Covers:    ffmpegClient,
		Renderer:  inkscape.New(cfg.Render.InkscapeBinary, cfg.Render.PDFUniteBinary, renderTimeout),
		CheckDeps: true,
	}
}

// Run executes the build. It is safe to call once per Pipeline.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := p.Logger

	if p.CheckDeps {
		if _, err := deps.Verify(p.Config); err != nil {
			return nil, err
		}
	}
	if err := p.Config.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "prepare", "create output directories", err)
	}

	lock := flock.New(filepath.Join(p.Config.Output.Dir, ".trackdeck.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "lock", "acquire output lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "lock",
			"output directory is locked by another build", nil)
	}
	defer lock.Unlock()

	tracks, err := p.loadTracks(ctx, logger)
	if err != nil {
		return nil, err
	}

	geom, err := p.pageGeometry()
	if err != nil {
		return nil, err
	}

	ids, err := p.deriveIdentifiers(tracks)
	if err != nil {
		return nil, err
	}
	if err := ident.CheckCollisions(tracks, ids); err != nil {
		return nil, err
	}

	if err := p.publishTracks(ctx, logger, tracks, ids); err != nil {
		return nil, err
	}

	report := stats.Analyze(tracks)
	logger.InfoContext(ctx, "library analyzed",
		"tracks", report.Total,
		"unknown_year", report.Unknown)

	pages, err := p.composePages(tracks, ids, geom)
	if err != nil {
		return nil, err
	}

	pdfPath, err := p.renderDeck(ctx, logger, pages, geom)
	if err != nil {
		return nil, err
	}

	manifestPath, playerPath, err := p.writeBundle(tracks, ids)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "build complete",
		"tracks", len(tracks),
		"pages", len(pages),
		"pdf", pdfPath)

	return &Result{
		RunID:        runID,
		Tracks:       tracks,
		Identifiers:  ids,
		Pages:        pages,
		Report:       report,
		PDFPath:      pdfPath,
		ManifestPath: manifestPath,
		PlayerPath:   playerPath,
	}, nil
}

func (p *Pipeline) loadTracks(ctx context.Context, logger *slog.Logger) ([]track.Track, error) {
	ctx = services.WithPhase(ctx, "scan")
	tracks, err := p.Loader.LoadDir(ctx, p.Config.Input.TrackDir)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "scan",
			fmt.Sprintf("no tracks found in %q", p.Config.Input.TrackDir), nil)
	}
	logger.InfoContext(ctx, "library scanned", "tracks", len(tracks))
	return tracks, nil
}

// deriveIdentifiers computes the full identifier set up front. Hashing is
// cheap next to transcoding, and nothing is published until every identifier
// has cleared the collision check, so colliding tracks can never race on the
// same destination file.
func (p *Pipeline) deriveIdentifiers(tracks []track.Track) ([]ident.Identifier, error) {
	deriver := ident.New(p.Config.Identifiers.Mode == config.IdentModeRandom)
	ids := make([]ident.Identifier, len(tracks))
	for i := range tracks {
		id, err := deriver.Derive(tracks[i])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// publishTracks transcodes audio and publishes covers, bounded by the
// configured parallelism. It runs after the collision check, so every
// destination name is unique and workers never contend on a file.
func (p *Pipeline) publishTracks(ctx context.Context, logger *slog.Logger, tracks []track.Track, ids []ident.Identifier) error {
	ctx = services.WithPhase(ctx, "publish")
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallelism())

	for i := range tracks {
		i := i
		group.Go(func() error {
			t := tracks[i]
			id := ids[i]
			trackCtx := services.WithTrack(groupCtx, t.SourcePath)

			dest := filepath.Join(p.Config.SongsDir(), id.String()+p.Config.Audio.Extension)
			if err := p.Audio.Transcode(trackCtx, t.SourcePath, dest); err != nil {
				return err
			}

			if t.CoverPresent {
				if err := p.publishCover(trackCtx, logger, t, id); err != nil {
					return err
				}
			}

			logger.DebugContext(trackCtx, "track published", "source", t.SourcePath, "id", id.String())
			return nil
		})
	}
	return group.Wait()
}

func (p *Pipeline) parallelism() int {
	if p.Config.Workers.Parallelism < 1 {
		return 1
	}
	return p.Config.Workers.Parallelism
}

func (p *Pipeline) pageGeometry() (layout.Geometry, error) {
	cardsCfg := p.Config.Cards
	return layout.NewGeometry(cardsCfg.PageWidth, cardsCfg.PageHeight, cardsCfg.Margin,
		cardsCfg.CardWidth, cardsCfg.CardHeight)
}

// publishCover extracts embedded art into the build dir and scales it into
// the bundle. A failed extraction is advisory: the deck still works, the
// player just shows no art.
func (p *Pipeline) publishCover(ctx context.Context, logger *slog.Logger, t track.Track, id ident.Identifier) error {
	raw := filepath.Join(p.Config.Output.BuildDir, id.String()+".cover.jpg")
	if err := p.Covers.ExtractCover(ctx, t.SourcePath, raw); err != nil {
		logger.WarnContext(ctx, "cover extraction failed", "source", t.SourcePath, "error", err)
		return nil
	}
	if err := covers.Process(raw, covers.Path(p.Config.CoversDir(), id.String())); err != nil {
		logger.WarnContext(ctx, "cover processing failed", "source", t.SourcePath, "error", err)
	}
	return nil
}

func (p *Pipeline) composePages(tracks []track.Track, ids []ident.Identifier, geom layout.Geometry) ([]layout.Page, error) {
	cardsCfg := p.Config.Cards
	composer := &card.Composer{
		URLPrefix: cardsCfg.URLPrefix,
		Extension: p.Config.Audio.Extension,
		Emoji:     cardsCfg.Emoji,
		Font:      cardsCfg.Font,
		MaxQRSize: min(cardsCfg.CardWidth, cardsCfg.CardHeight) - 4,
	}

	deck := make([]card.Card, len(tracks))
	for i := range tracks {
		c, err := composer.Compose(tracks[i], ids[i])
		if err != nil {
			return nil, err
		}
		deck[i] = c
	}

	return layout.Paginate(deck, geom, layout.MirrorAxis(cardsCfg.DuplexMirror)), nil
}

// renderDeck writes each page SVG, converts them to PDFs in parallel, and
// merges the PDFs in page order.
func (p *Pipeline) renderDeck(ctx context.Context, logger *slog.Logger, pages []layout.Page, geom layout.Geometry) (string, error) {
	ctx = services.WithPhase(ctx, "render")
	cardsCfg := p.Config.Cards
	style := layout.Style{Font: cardsCfg.Font, Grid: cardsCfg.Grid, CropMarks: cardsCfg.CropMarks}

	pdfs := make([]string, len(pages))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallelism())

	for i := range pages {
		i := i
		group.Go(func() error {
			page := pages[i]
			svgPath := filepath.Join(p.Config.Output.BuildDir, "page-"+page.Footer+".svg")
			pdfPath := filepath.Join(p.Config.Output.BuildDir, "page-"+page.Footer+".pdf")

			doc := layout.RenderSVG(page, geom, style)
			if err := fileutil.WriteAtomic(svgPath, []byte(doc), 0o644); err != nil {
				return services.Wrap(services.ErrRender, "pipeline", "render", svgPath, err)
			}
			if err := p.Renderer.Convert(groupCtx, svgPath, pdfPath); err != nil {
				return err
			}
			pdfs[i] = pdfPath
			logger.DebugContext(groupCtx, "page rendered", "page", page.Footer)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	deckPath := filepath.Join(p.Config.Output.Dir, "cards.pdf")
	if err := p.Renderer.Merge(ctx, pdfs, deckPath); err != nil {
		return "", err
	}
	return deckPath, nil
}

func (p *Pipeline) writeBundle(tracks []track.Track, ids []ident.Identifier) (string, string, error) {
	entries, err := manifest.Build(tracks, ids, manifest.Options{
		URLPrefix: p.Config.Cards.URLPrefix,
		Extension: p.Config.Audio.Extension,
	})
	if err != nil {
		return "", "", err
	}

	manifestPath := filepath.Join(p.Config.Output.Dir, "index.json")
	if err := manifest.Write(manifestPath, entries); err != nil {
		return "", "", err
	}

	playerPath := filepath.Join(p.Config.Output.Dir, "index.html")
	err = manifest.WritePlayer(playerPath, manifest.PlayerConfig{
		Language: p.Config.Cards.Language,
		Title:    p.Config.Cards.Title,
		Emoji:    p.Config.Cards.Emoji,
	})
	if err != nil {
		return "", "", err
	}
	return manifestPath, playerPath, nil
}
