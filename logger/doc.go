// Package logger provides structured logging for fixturekit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Library types such as
// fixture.Fixture accept a *Logger and default to NewNop so tests stay quiet
// unless a caller opts in.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Named loggers
//
// Register stores a logger under a name and Get looks it up, falling back
// to the global logger tagged with that name. catalog.Open logs through
// the "catalog" logger (catalog.LoggerName) when it is given no logger, so
// a test can capture catalog output without threading a logger through:
//
//	logger.Register("catalog", logger.NewWithWriter(&cfg, "tests", &buf))
//	cat, err := catalog.Open(cfg)
//
// # Usage
//
//	log := logger.Get("fixture")
//	log.Debug("row out of range", logger.Fields("index", 7))
package logger
