package main

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/fixturekit/catalog"
	"github.com/kbukum/fixturekit/config"
	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/fixture"
	"github.com/kbukum/fixturekit/logger"
	"github.com/kbukum/fixturekit/source"
)

// tableNames lists the tables of the dataset file or catalog.
func (o *options) tableNames() ([]string, error) {
	if o.file != "" {
		ds, err := source.Load(o.file)
		if err != nil {
			return nil, err
		}
		return ds.Names(), nil
	}
	cat, err := o.openCatalog()
	if err != nil {
		return nil, err
	}
	return cat.Names(), nil
}

// fixture resolves the selected table and applies the fixture flags on top
// of whatever the catalog configured.
func (o *options) fixture() (*fixture.Fixture, error) {
	var (
		fx  *fixture.Fixture
		err error
	)
	if o.file != "" {
		fx, err = o.fileFixture()
	} else {
		fx, err = o.catalogFixture()
	}
	if err != nil {
		return nil, err
	}

	if o.primaryKey != "" {
		fx.SetPrimaryKey(o.primaryKey)
	}
	if len(o.hidden) > 0 {
		fx.SetHidden(o.hidden...)
	}
	if len(o.defaults) > 0 {
		defaults, err := parseAssignments("default", o.defaults)
		if err != nil {
			return nil, err
		}
		fx.SetDefaultOverride(defaults)
	}
	return fx, nil
}

func (o *options) fileFixture() (*fixture.Fixture, error) {
	ds, err := source.Load(o.file)
	if err != nil {
		return nil, err
	}
	name := o.table
	if name == "" {
		names := ds.Names()
		if len(names) == 0 {
			return nil, errors.NotFound("table", o.file)
		}
		name = names[0]
	}
	t, err := ds.Table(name)
	if err != nil {
		return nil, err
	}
	o.log.Debug("dataset loaded", logger.Fields(logger.FieldPath, o.file, logger.FieldTable, name, logger.FieldCount, len(t)))
	return fixture.New(t, fixture.WithLogger(o.log.WithFields(logger.Fields(logger.FieldTable, name)))), nil
}

func (o *options) catalogFixture() (*fixture.Fixture, error) {
	cat, err := o.openCatalog()
	if err != nil {
		return nil, err
	}
	name := o.table
	if name == "" {
		names := cat.Names()
		if len(names) != 1 {
			return nil, errors.InvalidInput("table", "required when the catalog does not hold exactly one table").
				WithDetail("tables", names)
		}
		name = names[0]
	}
	return cat.Fixture(matchName(cat.Names(), name))
}

// matchName returns the table name equal to want, or failing that the
// only one equal to it regardless of case.
func matchName(names []string, want string) string {
	var folded []string
	for _, n := range names {
		if n == want {
			return n
		}
		if strings.EqualFold(n, want) {
			folded = append(folded, n)
		}
	}
	if len(folded) == 1 {
		return folded[0]
	}
	return want
}

func (o *options) openCatalog() (*catalog.Catalog, error) {
	var opts []config.LoaderOption
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	cfg, err := config.Load(appName, opts...)
	if err != nil {
		return nil, err
	}
	if o.verbosity == 0 {
		o.log = logger.NewWithWriter(&cfg.Logging, cfg.Name, o.errOut)
	}
	return catalog.Open(cfg, catalog.WithLogger(o.log))
}

// parseAssignments reads key=value flags into a row. Values are YAML
// scalars or flow collections, so 2 is an integer, "2" a string and
// {a: 1} a map. Keys keep their flag order.
func parseAssignments(flag string, items []string) (data.Row, error) {
	r := data.Row{}
	for _, item := range items {
		key, raw, ok := strings.Cut(item, "=")
		if !ok || key == "" {
			return data.Row{}, errors.InvalidInput(flag, "expected key=value").WithDetail("value", item)
		}
		v, err := parseValue(raw)
		if err != nil {
			return data.Row{}, errors.InvalidInput(flag, err.Error()).WithDetail("value", item)
		}
		r = r.Set(key, v)
	}
	return r, nil
}

func parseValue(raw string) (data.Value, error) {
	if raw == "" {
		return data.String(""), nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return data.Value{}, err
	}
	return data.FromYAMLNode(&node)
}
