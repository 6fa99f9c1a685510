// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Defaults match the production ATAC deployment, so an empty file is a
// working configuration.
package config
