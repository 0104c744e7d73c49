// Package catalog builds named fixtures from a config.Config.
//
// Each configured table is loaded from its dataset file (files shared by
// several tables are read once) and wrapped in a fixture.Fixture with the
// configured primary key, hidden fields, defaults and post-process hooks:
//
//	cfg, err := config.Load("app")
//	cat, err := catalog.Open(cfg)
//	users, err := cat.Fixture("users")
package catalog

import (
	"slices"

	"github.com/kbukum/fixturekit/config"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/postprocess"
	"github.com/kbukum/fixturekit/source"
)

// LoggerName is the registry name Open logs through when no logger is given.
const LoggerName = "catalog"

// Catalog holds the fixtures of one configuration.
type Catalog struct {
	fixtures map[string]*fixture.Fixture
	names    []string
}

type options struct {
	hooks map[string]fixture.PostProcessFunc
	log   *logger.Logger
}

// Option configures Open.
type Option func(*options)

// WithPostProcess attaches a hook to the named fixture. It runs after the
// hooks declared in the config.
func WithPostProcess(name string, fn fixture.PostProcessFunc) Option {
	return func(o *options) { o.hooks[name] = fn }
}

// WithLogger sets the logger for the catalog and its fixtures. Without it
// the catalog logs through the logger registered as LoggerName, or the
// global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// Open validates cfg and builds every configured fixture.
func Open(cfg *config.Config, opts ...Option) (*Catalog, error) {
	o := &options{hooks: make(map[string]fixture.PostProcessFunc)}
	for _, opt := range opts {
		opt(o)
	}
	var log *logger.Logger
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
		log = logger.Get(LoggerName)
	} else {
		log = o.log.WithComponent(LoggerName)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for name := range o.hooks {
		if _, ok := cfg.Tables[name]; !ok {
			return nil, errors.NotFound("fixture", name)
		}
	}

	c := &Catalog{
		fixtures: make(map[string]*fixture.Fixture, len(cfg.Tables)),
		names:    cfg.TableNames(),
	}
	datasets := make(map[string]*source.Dataset)

	for _, name := range c.names {
		tc := cfg.Tables[name]
		path := cfg.SourcePath(tc)

		ds, ok := datasets[path]
		if !ok {
			var err error
			if ds, err = source.Load(path); err != nil {
				log.Error("dataset load failed", logger.Fields(logger.FieldPath, path, logger.FieldError, err.Error()))
				return nil, err
			}
			datasets[path] = ds
			log.Debug("dataset loaded", logger.Fields(logger.FieldPath, path, logger.FieldCount, ds.Len()))
		}

		table, err := ds.Table(tc.Table)
		if err != nil {
			return nil, errors.NotFound("table", tc.Table).WithDetail(logger.FieldPath, path).WithCause(err)
		}
		defaults, err := tc.DefaultOverride(cfg.Delimiter)
		if err != nil {
			return nil, err
		}

		fxOpts := []fixture.Option{
			fixture.WithPrimaryKey(tc.PrimaryKey),
			fixture.WithHidden(tc.Hidden...),
			fixture.WithDefaults(defaults),
			fixture.WithDelimiter(cfg.Delimiter),
			fixture.WithLogger(o.log.WithFields(logger.Fields(logger.FieldTable, name))),
		}
		if hook := hooksFor(tc, o.hooks[name]); hook != nil {
			fxOpts = append(fxOpts, fixture.WithPostProcess(hook))
		}
		c.fixtures[name] = fixture.New(table, fxOpts...)
		log.Debug("fixture ready", logger.Fields(logger.FieldTable, name, logger.FieldCount, table.RowCount()))
	}
	return c, nil
}

// hooksFor chains the config-declared hooks of a table with extra.
func hooksFor(tc config.TableConfig, extra fixture.PostProcessFunc) fixture.PostProcessFunc {
	var hooks []fixture.PostProcessFunc
	for _, r := range tc.Rename {
		hooks = append(hooks, postprocess.Rename(r.From, r.To))
	}
	if tc.UUID != nil {
		ns := tc.UUID.NamespaceOr(postprocess.NamespaceFixture)
		hooks = append(hooks, postprocess.UUID(tc.UUID.Field, ns, tc.UUID.From...))
	}
	if extra != nil {
		hooks = append(hooks, extra)
	}
	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	}
	return postprocess.Chain(hooks...)
}

// Fixture returns the named fixture, or an ErrCodeNotFound error.
func (c *Catalog) Fixture(name string) (*fixture.Fixture, error) {
	fx, ok := c.fixtures[name]
	if !ok {
		return nil, errors.NotFound("fixture", name)
	}
	return fx, nil
}

// Names returns the fixture names, sorted.
func (c *Catalog) Names() []string { return slices.Clone(c.names) }
