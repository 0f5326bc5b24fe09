// Package config loads, normalizes, and validates clipsight configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CLIPSIGHT_API_KEY. The Config type centralizes every knob the CLI and the
// analysis pipeline need, so scratch/artifact directories, pipeline tunables,
// and model credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
