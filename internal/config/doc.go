// Package config loads and merges triage configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (TRIAGE_MODEL, TRIAGE_LANGUAGE, TRIAGE_FORMAT,
//     TRIAGE_CONCURRENCY, OPENAI_ORG_ID, etc.)
//  3. Config file ($XDG_CONFIG_HOME/triage/config.json)
//  4. Built-in defaults
//
// The OpenAI API key is never stored in the config file; it is read from
// OPENAI_API_KEY at request time.
package config
