// Package config loads, normalizes, and validates zwoparse configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// ZWOPARSE_EXPORT_DIR. The Config type centralizes every knob the converter
// and CLI need: where workouts are written, which metadata fills blank
// fields, how strictly rows are parsed, and how runs are logged and recorded.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
