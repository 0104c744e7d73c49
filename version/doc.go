// Package version reports build information for fixturectl.
//
// Version, commit and build time can be set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/fixturekit/version.Version=1.0.0" ./cmd/fixturectl
package version
