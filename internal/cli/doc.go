// Package cli wires together the Cobra command tree for the triage binary.
//
// It defines the root command and all subcommands (validate, check, prompt,
// classify, config, doctor, version), binds flags, reads configuration,
// invokes the validator, and returns deterministic exit codes for CI gating.
package cli
