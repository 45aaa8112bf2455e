// Package config loads, normalizes, and validates layoutkit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the LAYOUTKIT_DATA_DIR environment
// fallback. The Config type centralizes the data directory that holds the
// property database, the property server socket, the default canvas size, and
// log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
