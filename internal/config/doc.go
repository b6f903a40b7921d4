// Package config loads reelq settings from TOML, applies defaults and
// environment overrides, and validates the result before any command runs.
//
// Load resolves the file from an explicit path, ~/.config/reelq/config.toml,
// or ./reelq.toml, in that order. Path fields are expanded (~ and relative
// paths) during normalization so downstream packages always see absolute
// locations. CreateSample writes the embedded sample used by `reelq config init`.
package config
