// Package config loads and merges quip configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (QUIP_HISTORY_DIR, QUIP_PREVIEW_WIDTH, QUIP_LOG_LEVEL, etc.)
//  3. Config file ($XDG_CONFIG_HOME/quip/config.json)
//  4. Built-in defaults
//
// History and the journal live under $XDG_DATA_HOME/quip unless configured
// otherwise.
package config
