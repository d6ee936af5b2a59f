// Package shared provides common utilities and test helpers used across
// the codebase. It serves as a central location for functionality that
// doesn't belong to any specific domain or architectural layer.
//
// The testutil subpackage provides log capture for slog-based components
// and fixture tables for the dataset pipeline tests.
package shared
