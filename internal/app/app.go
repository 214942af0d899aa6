// Package app implements the application layer for cagesync.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"go.trai.ch/cagesync/internal/adapters/detector"
	"go.trai.ch/cagesync/internal/adapters/linear"
	"go.trai.ch/cagesync/internal/core/domain"
	"go.trai.ch/cagesync/internal/core/ports"
	"go.trai.ch/cagesync/internal/engine/correspondence"
	"go.trai.ch/cagesync/internal/engine/synchronizer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic. Every operation that loads,
// modifies and saves the registry holds mu for its full duration.
type App struct {
	mu sync.Mutex

	configLoader ports.ConfigLoader
	importer     ports.MeshImporter
	stores       ports.StoreOpener
	synchronizer *synchronizer.Synchronizer
	exporter     ports.Exporter
	logger       ports.Logger
	tracer       ports.Tracer
	newWatcher   ports.WatcherFactory

	workDir  string
	stdout   io.Writer
	stderr   io.Writer
	color    string
	renderer ports.Renderer
	now      func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	importer ports.MeshImporter,
	stores ports.StoreOpener,
	engine *synchronizer.Synchronizer,
	exporter ports.Exporter,
	log ports.Logger,
	tracer ports.Tracer,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		importer:     importer,
		stores:       stores,
		synchronizer: engine,
		exporter:     exporter,
		logger:       log,
		tracer:       tracer,
		newWatcher:   newWatcher,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		now:          time.Now,
	}
}

// WithWorkDir sets the directory the workspace is discovered from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithOutput sets the streams reports and step timings are written to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// SetColor applies the --color flag ("auto", "always" or "never").
func (a *App) SetColor(flag string) {
	a.color = flag
}

// WithRenderer replaces the linear renderer.
// This is primarily used for testing.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.renderer = r
	return a
}

// WithClock replaces time.Now.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

func (a *App) newRenderer(verbose bool) ports.Renderer {
	if a.renderer != nil {
		return a.renderer
	}

	auto := detector.ModePlain
	if f, ok := a.stdout.(*os.File); ok {
		auto = detector.DetectEnvironment(f)
	}

	opts := []linear.Option{linear.WithVerbose(verbose)}
	if detector.ResolveMode(auto, a.color) == detector.ModePlain {
		opts = append(opts, linear.WithPlain())
	}
	return linear.NewRenderer(a.stdout, a.stderr, opts...)
}

func (a *App) loadSettings() (*domain.Settings, error) {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}

	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return settings, nil
}

// importSnapshot reads both collections concurrently.
func (a *App) importSnapshot(ctx context.Context, settings *domain.Settings) (*domain.Snapshot, error) {
	ctx, span := a.tracer.Start(ctx, "Importing Collections")
	defer span.End()

	var retopo, reference []domain.NamedMesh

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meshes, err := a.importer.Import(gctx, settings.RetopoPath, settings.ImportScale)
		if err != nil {
			return zerr.With(err, "side", string(domain.SideRetopo))
		}
		retopo = meshes
		return nil
	})
	g.Go(func() error {
		meshes, err := a.importer.Import(gctx, settings.ReferencePath, settings.ImportScale)
		if err != nil {
			return zerr.With(err, "side", string(domain.SideReference))
		}
		reference = meshes
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("cagesync.retopo_objects", len(retopo))
	span.SetAttribute("cagesync.reference_objects", len(reference))
	return domain.NewSnapshot(retopo, reference), nil
}

// currentCorrespondence imports and resolves the source collections.
func (a *App) currentCorrespondence(ctx context.Context, settings *domain.Settings) (*domain.Correspondence, error) {
	snap, err := a.importSnapshot(ctx, settings)
	if err != nil {
		return nil, err
	}
	return correspondence.Resolve(snap.Retopo(), snap.Reference())
}

// withRegistry opens the workspace store, loads the registry and hands it to fn.
// The registry fn returns is saved unless it is nil.
func (a *App) withRegistry(
	ctx context.Context,
	settings *domain.Settings,
	fn func(reg *domain.Registry) (*domain.Registry, error),
) (err error) {
	store, err := a.stores.Open(settings.Root, settings.Store)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	reg, err := store.Load(ctx)
	if err != nil {
		return err
	}

	next, fnErr := fn(reg)
	if next != nil {
		if err := a.persist(ctx, store, next); err != nil {
			return errors.Join(fnErr, err)
		}
	}
	return fnErr
}

func (a *App) persist(ctx context.Context, store ports.RegistryStore, reg *domain.Registry) error {
	ctx, span := a.tracer.Start(ctx, "Persisting Registry", ports.WithAttribute("cagesync.bundles", reg.Len()))
	defer span.End()

	if err := store.Save(ctx, reg); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// resolveNames expands --all and rejects names missing from the registry.
// --all on an empty registry yields no names and no error.
func resolveNames(reg *domain.Registry, names []string, all bool) ([]string, error) {
	if all {
		return reg.Names(), nil
	}
	if len(names) == 0 {
		return nil, domain.ErrNoBundlesSpecified
	}
	for _, name := range names {
		if !reg.Has(name) {
			return nil, &domain.UnknownNameError{Name: name}
		}
	}
	return names, nil
}
