package fixture

import (
	"slices"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/logger"
)

// Option configures a Fixture at construction.
type Option func(*Fixture)

// WithPrimaryKey sets the primary key column.
func WithPrimaryKey(name string) Option {
	return func(f *Fixture) { f.primaryKey = name }
}

// WithHidden sets the fields removed from transformed rows.
func WithHidden(names ...string) Option {
	return func(f *Fixture) { f.hidden = slices.Clone(names) }
}

// WithDefaults sets the default override.
func WithDefaults(defaults data.Row) Option {
	return func(f *Fixture) { f.defaults = defaults }
}

// WithPostProcess sets the hook run between defaults and hiding.
func WithPostProcess(fn PostProcessFunc) Option {
	return func(f *Fixture) { f.postProcess = fn }
}

// WithDelimiter sets the separator for dotted override paths. An empty
// delimiter turns path splitting off.
func WithDelimiter(delim string) Option {
	return func(f *Fixture) { f.delimiter = delim }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logger.Logger) Option {
	return func(f *Fixture) {
		if l != nil {
			f.log = l.WithComponent("fixture")
		}
	}
}
