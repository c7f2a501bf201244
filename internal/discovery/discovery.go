package discovery

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/logging"
	"github.com/indaco/nmsearch/internal/parser"
)

// Service provides module-directory discovery.
type Service struct {
	fs             core.FileSystem
	parser         *parser.Reader
	logger         *log.Logger
	strategy       string
	manifests      []string
	exclude        []string
	depFolder      string
	maxConcurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrategy overrides the configured strategy.
func WithStrategy(strategy string) Option {
	return func(s *Service) {
		if strategy != "" {
			s.strategy = strategy
		}
	}
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem, cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	d := cfg.GetDiscoveryConfig()

	s := &Service{
		fs:             fs,
		parser:         parser.NewReader(fs),
		logger:         logging.Nop(),
		strategy:       d.Strategy,
		manifests:      d.Manifests,
		exclude:        d.Exclude,
		depFolder:      cfg.DependencyFolder(),
		maxConcurrency: d.MaxConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover runs the configured strategy. Candidate lists from the recursive
// scan are normalised with WithRoot so every strategy offers the root first.
func (s *Service) Discover(ctx context.Context, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch s.strategy {
	case config.StrategyManifest:
		dirs, manifest, err := s.findModuleDirs(ctx, root)
		if err != nil {
			return nil, err
		}
		return &Result{Strategy: config.StrategyManifest, Manifest: manifest, Candidates: dirs}, nil

	case config.StrategyRecursive:
		return s.scanResult(ctx, root)

	case config.StrategyAuto:
		dirs, manifest, err := s.findModuleDirs(ctx, root)
		if err != nil {
			return nil, err
		}
		if manifest != "" {
			return &Result{Strategy: config.StrategyManifest, Manifest: manifest, Candidates: dirs}, nil
		}
		return s.scanResult(ctx, root)

	default:
		return nil, fmt.Errorf("unknown discovery strategy %q", s.strategy)
	}
}

func (s *Service) scanResult(ctx context.Context, root string) (*Result, error) {
	dirs, err := s.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	return &Result{Strategy: config.StrategyRecursive, Candidates: WithRoot(dirs)}, nil
}
