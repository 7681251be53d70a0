// Package config loads editor settings from a TOML file and can watch
// it for changes. A missing file yields the defaults; a broken file is
// an error rather than a silent fallback so typos surface immediately.
// The watcher debounces filesystem events because editors write a save
// as several rapid operations.
package config
