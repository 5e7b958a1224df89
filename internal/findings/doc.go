// Package findings loads static-analysis findings to be validated.
//
// A findings file lists source files and the findings reported against them:
//
//	files:
//	  - path: src/vault.rs
//	    findings:
//	      - line: 42
//	        id: RUST-UNSAFE-001
//	        severity: High
//
// JSON with the same shape is accepted. [Set.Inputs] reads each source file
// and resolves its language so the set can be handed to the validator.
package findings
