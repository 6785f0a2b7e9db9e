package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/remora-debug/remora/internal/config"
	"github.com/remora-debug/remora/internal/logging"
	"github.com/remora-debug/remora/pkg/inspect"
	"github.com/remora-debug/remora/pkg/render"
	"github.com/remora-debug/remora/pkg/snapshot"
)

// SnapshotFlags holds the snapshot selection flag shared by the
// commands that read one.
type SnapshotFlags struct {
	Path string
}

// AddFlags adds the snapshot flag to a FlagSet.
func (f *SnapshotFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Path, "snapshot", "s", "", "Path to a snapshot file (.yaml)")
}

// session is the state every command starts from: config, logger and a
// type registry with built-in and user-configured types loaded.
type session struct {
	cfg      *config.Config
	loader   *config.Loader
	log      zerolog.Logger
	registry *inspect.Registry
	color    bool
}

// newSession loads the config, applies the persistent flags on top and
// prepares the type registry.
func newSession() (*session, error) {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	log := logging.New(logging.Config{
		Level:   level,
		Pretty:  cfg.Logging.Pretty,
		NoColor: cfg.Logging.NoColor || noColor,
	})

	registry := inspect.NewRegistry(log)
	if err := registry.RegisterBuiltins(); err != nil {
		return nil, fmt.Errorf("failed to register built-in types: %w", err)
	}
	descs, err := cfg.EnumDescriptors()
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterAll(descs); err != nil {
		return nil, fmt.Errorf("failed to register configured enums: %w", err)
	}

	return &session{
		cfg:      cfg,
		loader:   loader,
		log:      log,
		registry: registry,
		color:    colorEnabled(cfg),
	}, nil
}

// openSnapshot loads the snapshot named by the flags and builds an
// inspector bound to its byte order.
func (s *session) openSnapshot(flags *SnapshotFlags) (*snapshot.Snapshot, *inspect.Inspector, error) {
	if flags.Path == "" {
		return nil, nil, fmt.Errorf("no snapshot given (use --snapshot)")
	}
	snap, err := snapshot.Load(flags.Path)
	if err != nil {
		return nil, nil, err
	}

	insp := inspect.NewInspector(s.log, s.registry, inspect.Config{
		Render: render.Options{EnumDocs: s.cfg.Render.EnumDocs},
		Order:  snap.Order(),
		Indent: s.cfg.Render.Indent,
	})
	return snap, insp, nil
}

// colorEnabled resolves the configured color mode against the terminal.
func colorEnabled(cfg *config.Config) bool {
	if noColor {
		return false
	}
	switch cfg.Render.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
