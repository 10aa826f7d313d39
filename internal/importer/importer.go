// Package importer exports TShock characters as Terraria player files.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

// ManifestFile is written to the output directory after every run.
const ManifestFile = "manifest.yaml"

// ErrVerification is returned when an encoded player does not decode back
// to the record that was encoded.
var ErrVerification = errors.New("encoded player failed read-back verification")

// ErrPlayersFailed is wrapped by Run when at least one player was not exported.
var ErrPlayersFailed = errors.New("players failed to export")

// Options controls a Run.
type Options struct {
	OutputDir string
	Version   int
	Workers   int
	FailFast  bool
}

// Result is the outcome for one player.
type Result struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file,omitempty"`
	Occupied int    `yaml:"occupied_slots"`
	Error    string `yaml:"error,omitempty"`
}

// Manifest summarises a Run and is written as ManifestFile.
type Manifest struct {
	RunID   string        `yaml:"run_id"`
	Version int           `yaml:"format_version"`
	Started time.Time     `yaml:"started"`
	Elapsed time.Duration `yaml:"elapsed"`
	Players []Result      `yaml:"players"`
}

// Failed returns the number of players that were not exported.
func (m *Manifest) Failed() int {
	n := 0
	for _, r := range m.Players {
		if r.Error != "" {
			n++
		}
	}
	return n
}

// Importer exports characters from a Source through a Codec.
type Importer struct {
	source  Source
	codec   Codec
	catalog *item.Catalog
	logger  *zap.Logger
}

// New constructs an Importer.
//
// Precondition: source, codec, catalog, and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, codec Codec, catalog *item.Catalog, logger *zap.Logger) *Importer {
	return &Importer{source: source, codec: codec, catalog: catalog, logger: logger}
}

// Run exports every named character, or every stored character when names
// is empty, into opts.OutputDir. Repeated names are exported once, and
// names that sanitize to the same file name get numbered files. Players are assembled concurrently, at most
// opts.Workers at a time. A failed player is recorded in the manifest and
// does not stop the others unless opts.FailFast is set.
//
// Precondition: opts.Workers >= 1; opts.OutputDir must exist or be creatable.
// Postcondition: the manifest is written and returned; the error wraps
// ErrPlayersFailed when any player failed.
func (imp *Importer) Run(ctx context.Context, names []string, opts Options) (*Manifest, error) {
	manifest := &Manifest{
		RunID:   uuid.NewString(),
		Version: opts.Version,
		Started: time.Now().UTC(),
	}
	logger := imp.logger.With(zap.String("run_id", manifest.RunID))

	if len(names) == 0 {
		all, err := imp.source.ListCharacters(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing characters: %w", err)
		}
		names = all
	}
	names, stems := assignFiles(names)
	for i, n := range names {
		if stems[i] != FileName(n) {
			logger.Warn("file name collision", zap.String("name", n), zap.String("stem", stems[i]))
		}
	}
	logger.Info("export started", zap.Int("players", len(names)), zap.Int("version", opts.Version))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	manifest.Players = make([]Result, len(names))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, name := range names {
		g.Go(func() error {
			t0 := time.Now()
			res, err := imp.exportOne(gctx, name, stems[i], opts)
			mu.Lock()
			manifest.Players[i] = res
			mu.Unlock()
			if err != nil {
				logger.Warn("export failed", zap.String("name", name), zap.Error(err))
				if opts.FailFast {
					return fmt.Errorf("exporting %q: %w", name, err)
				}
				return nil
			}
			logger.Info("exported player",
				zap.String("name", name),
				zap.String("file", res.File),
				zap.Int("occupied", res.Occupied),
				zap.Duration("elapsed", time.Since(t0)),
			)
			return nil
		})
	}
	runErr := g.Wait()
	manifest.Elapsed = time.Since(manifest.Started).Round(time.Millisecond)

	if err := imp.writeManifest(opts.OutputDir, manifest); err != nil {
		return manifest, err
	}
	logger.Info("export finished",
		zap.Int("players", len(names)),
		zap.Int("failed", manifest.Failed()),
		zap.Duration("elapsed", manifest.Elapsed),
	)

	if runErr != nil {
		return manifest, fmt.Errorf("%w: %w", ErrPlayersFailed, runErr)
	}
	if n := manifest.Failed(); n > 0 {
		return manifest, fmt.Errorf("%w: %d of %d", ErrPlayersFailed, n, len(names))
	}
	return manifest, nil
}

func (imp *Importer) exportOne(ctx context.Context, name, stem string, opts Options) (Result, error) {
	res := Result{Name: name}
	fail := func(err error) (Result, error) {
		res.Error = err.Error()
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	row, err := imp.source.LoadCharacter(ctx, name)
	if err != nil {
		return fail(fmt.Errorf("loading character: %w", err))
	}
	template, err := imp.codec.DecodeTemplate()
	if err != nil {
		return fail(fmt.Errorf("decoding template: %w", err))
	}
	p, err := tshock.AssemblePlayer(template, row, imp.catalog)
	if err != nil {
		return fail(fmt.Errorf("assembling player: %w", err))
	}

	data, err := imp.codec.Encode(p, opts.Version)
	if err != nil {
		return fail(fmt.Errorf("encoding player: %w", err))
	}

	// Validate output is loadable before writing.
	back, version, err := imp.codec.Decode(data)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrVerification, err))
	}
	if version != opts.Version || back.Name != p.Name || back.Occupancy() != p.Occupancy() {
		return fail(fmt.Errorf("%w: %q", ErrVerification, name))
	}

	path := filepath.Join(opts.OutputDir, stem+imp.codec.Extension())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fail(fmt.Errorf("writing %s: %w", path, err))
	}
	res.File = path
	res.Occupied = p.Occupancy().Total()
	return res, nil
}

func (imp *Importer) writeManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("serialising manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
