package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/handiism/podcast-downloader/internal/audio"
	"github.com/handiism/podcast-downloader/internal/config"
	"github.com/handiism/podcast-downloader/internal/feed"
	"github.com/handiism/podcast-downloader/internal/http"
	ioutils "github.com/handiism/podcast-downloader/internal/io"
	"github.com/handiism/podcast-downloader/internal/logging"
	"github.com/handiism/podcast-downloader/internal/model"
)

// ErrLocked is returned when another run holds the output directory lock.
var ErrLocked = errors.New("output directory is in use by another podcast-dl run")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Summary counts what happened to each episode of a run.
type Summary struct {
	Channel     string
	Episodes    int
	Downloaded  int
	Skipped     int
	Failed      int
	NoEnclosure int
	Bytes       int64
}

// Manager downloads the episodes of one feed, one at a time.
type Manager struct {
	settings     *config.Settings
	pathCfg      *model.PathConfig
	httpClient   *http.Client
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	logger       *slog.Logger

	totalEpisodes     atomic.Int32
	processedEpisodes atomic.Int32
	receivedBytes     atomic.Int64
	inFlightBytes     atomic.Int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
//
// logger may be nil. onProgress receives the per-episode report lines and
// may be nil.
func NewManager(settings *config.Settings, logger *slog.Logger, onProgress func(ProgressEvent)) *Manager {
	pathCfg := settings.ToPathConfig()

	return &Manager{
		settings:     settings,
		pathCfg:      pathCfg,
		httpClient:   http.NewClient(settings.UserAgent, settings.Timeout()),
		tagger:       audio.NewTagger(audio.DefaultTagConfig()),
		playlist:     audio.NewPlaylistCreator(pathCfg.PlaylistFormat, settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		logger:       logging.NewComponentLogger(logger, "download"),
		onProgress:   onProgress,
	}
}

// GetProgress returns how many episodes have been handled, how many the
// feed holds, and how many bytes have been received so far.
func (m *Manager) GetProgress() (processed, total int32, received int64) {
	return m.processedEpisodes.Load(), m.totalEpisodes.Load(),
		m.receivedBytes.Load() + m.inFlightBytes.Load()
}

// Run loads the feed at feedPath and downloads every episode in document
// order.
//
// Per-episode problems (missing enclosure, HTTP errors, write errors) are
// reported through the progress callback and counted in the summary; they
// do not make Run fail. Run returns an error only when the feed cannot be
// loaded, the output directory cannot be locked, or ctx is cancelled.
func (m *Manager) Run(ctx context.Context, feedPath string) (*Summary, error) {
	f, err := m.loadFeed(feedPath)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Channel: f.ResolvedTitle()}

	unlock, err := m.lockOutput()
	if err != nil {
		return summary, err
	}
	defer unlock()

	var artwork []byte
	if m.settings.ModifyTags && m.settings.SaveCoverArtInTags && f.HasArtwork() {
		artwork = m.fetchArtwork(ctx, f)
	}

	seen := make(map[string]bool)
	var entries []audio.PlaylistEntry

	for ep := range f.Episodes {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Episodes++

		entry, err := m.processEpisode(ctx, ep, f, artwork, seen, summary)
		m.processedEpisodes.Add(1)
		if err != nil {
			return summary, err
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	if m.settings.CreatePlaylist && len(entries) > 0 {
		m.writePlaylist(ctx, f, entries)
	}

	m.logger.Info("run finished",
		slog.String("channel", summary.Channel),
		slog.Int("downloaded", summary.Downloaded),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// DryRun loads the feed and reports where every episode would be saved,
// without touching the network or creating anything on disk.
func (m *Manager) DryRun(ctx context.Context, feedPath string) (*Summary, error) {
	f, err := m.loadFeed(feedPath)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Channel: f.ResolvedTitle()}

	for ep := range f.Episodes {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Episodes++
		m.processedEpisodes.Add(1)

		dest, ok := model.NewDestination(ep, f.Title, m.pathCfg)
		if !ok {
			summary.NoEnclosure++
			m.progress(LevelVerbose, "No enclosure, skipping: %s", ep.ResolvedTitle())
			continue
		}
		if ioutils.FileExists(dest.Path) {
			summary.Skipped++
			m.progress(LevelInfo, "Already exists, skipping: %s", dest.Path)
			continue
		}
		m.progress(LevelInfo, "Would download %s to %s", ep.EnclosureURL, dest.Path)
	}
	return summary, nil
}

func (m *Manager) loadFeed(feedPath string) (*model.Feed, error) {
	f, err := feed.Load(feedPath)
	if err != nil {
		return nil, err
	}

	total := f.CountEpisodes()
	m.totalEpisodes.Store(int32(total))
	m.processedEpisodes.Store(0)
	m.receivedBytes.Store(0)
	m.inFlightBytes.Store(0)

	m.logger.Debug("feed loaded",
		slog.String("path", feedPath),
		slog.String("channel", f.ResolvedTitle()),
		slog.Int("episodes", total),
	)
	m.progress(LevelVerbose, "Found %d episode(s) in %s", total, f.ResolvedTitle())
	return f, nil
}

// LockPath returns the lock file guarding outputDir. It lives in the system
// temp directory, keyed by the absolute output path, so the output tree only
// ever holds episodes.
func LockPath(outputDir string) (string, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "podcast-dl-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// lockOutput takes an exclusive lock on the output directory so two runs
// never write the same tree. The returned func releases it.
func (m *Manager) lockOutput() (func(), error) {
	lockPath, err := LockPath(m.pathCfg.OutputDir)
	if err != nil {
		return nil, err
	}

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	m.logger.Debug("output locked", slog.String("lock", lockPath))
	return func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}, nil
}

// processEpisode derives the destination for ep and downloads it unless it
// already exists. It returns a playlist entry when the file is on disk
// afterwards. The error is non nil only when ctx was cancelled.
func (m *Manager) processEpisode(ctx context.Context, ep model.Episode, f *model.Feed, artwork []byte, seen map[string]bool, summary *Summary) (*audio.PlaylistEntry, error) {
	dest, ok := model.NewDestination(ep, f.Title, m.pathCfg)
	if !ok {
		summary.NoEnclosure++
		if ep.HasEnclosure() {
			m.progress(LevelWarning, "No file name in enclosure URL, skipping: %s", ep.EnclosureURL)
		} else {
			m.progress(LevelVerbose, "No enclosure, skipping: %s", ep.ResolvedTitle())
		}
		return nil, nil
	}

	if seen[dest.Path] {
		m.progress(LevelWarning, "Destination already used by an earlier episode: %s", dest.Path)
	}
	seen[dest.Path] = true

	if err := ioutils.EnsureDir(dest.Dir); err != nil {
		summary.Failed++
		m.progress(LevelError, "Error creating directory %s: %v", dest.Dir, err)
		return nil, nil
	}

	entry := &audio.PlaylistEntry{
		Path:  filepath.ToSlash(filepath.Join(filepath.Base(dest.Dir), dest.FileName)),
		Title: ep.ResolvedTitle(),
	}

	if ioutils.FileExists(dest.Path) {
		summary.Skipped++
		m.progress(LevelInfo, "Already exists, skipping: %s", dest.Path)
		return entry, nil
	}

	m.progress(LevelInfo, "Downloading %s to %s...", ep.EnclosureURL, dest.Path)

	body, err := m.httpClient.DownloadBytes(ctx, ep.EnclosureURL, func(written, _ int64) {
		m.inFlightBytes.Store(written)
	})
	m.inFlightBytes.Store(0)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		summary.Failed++
		m.reportFetchError(ep.EnclosureURL, err)
		return nil, nil
	}

	if err := ioutils.WriteFile(ctx, dest.Path, body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		summary.Failed++
		m.progress(LevelError, "Error writing %s: %v", dest.Path, err)
		return nil, nil
	}

	summary.Downloaded++
	summary.Bytes += int64(len(body))
	m.receivedBytes.Add(int64(len(body)))
	m.progress(LevelSuccess, "Saved: %s", dest.Path)

	if m.settings.ModifyTags && audio.CanTag(dest.Path) {
		if err := m.tagger.SaveTags(dest.Path, ep, f, artwork); err != nil {
			m.progress(LevelWarning, "Error tagging %s: %v", dest.Path, err)
		}
	}

	return entry, nil
}

func (m *Manager) reportFetchError(url string, err error) {
	var statusErr *http.StatusError
	if errors.As(err, &statusErr) {
		m.logger.Debug("unexpected status", slog.String("url", url), slog.Int("status", statusErr.Code))
		m.progress(LevelError, "Failed to download: %s (Status code: %d)", url, statusErr.Code)
		return
	}
	m.logger.Debug("request failed", slog.String("url", url), logging.Error(err))
	m.progress(LevelError, "Failed to download: %s (%v)", url, err)
}

// fetchArtwork downloads the channel image and prepares it for embedding.
// Failures only cost the artwork.
func (m *Manager) fetchArtwork(ctx context.Context, f *model.Feed) []byte {
	data, err := m.httpClient.Get(ctx, f.ImageURL)
	if err != nil {
		m.progress(LevelWarning, "Error downloading artwork for %s: %v", f.ResolvedTitle(), err)
		return nil
	}

	artwork, err := m.imageService.PrepareCoverArt(ctx, data, m.settings.CoverArtInTagsMaxSize)
	if err != nil {
		m.progress(LevelWarning, "Error processing artwork for %s: %v", f.ResolvedTitle(), err)
		return nil
	}

	m.progress(LevelVerbose, "Downloaded artwork for %s", f.ResolvedTitle())
	return artwork
}

func (m *Manager) writePlaylist(ctx context.Context, f *model.Feed, entries []audio.PlaylistEntry) {
	content := m.playlist.CreatePlaylist(audio.Playlist{
		Title:   f.ResolvedTitle(),
		Author:  f.Author,
		Entries: entries,
	})

	path := model.PlaylistPath(f.Title, m.pathCfg)
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		m.progress(LevelWarning, "Error creating playlist: %v", err)
		return
	}
	m.progress(LevelSuccess, "Created playlist: %s", path)
}

func (m *Manager) progress(level ProgressLevel, format string, args ...any) {
	if m.onProgress != nil {
		m.onProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}
