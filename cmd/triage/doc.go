// Triage is a CLI that asks an OpenAI chat model whether static-analysis
// findings are real, labelling each file Valid or False positive.
//
// Rust and Solidity-Ethereum sources are supported. Only Critical and High
// findings are sent unless --all-severities is given.
//
// Usage:
//
//	triage validate findings.yaml --root .   # validate every file in a findings file
//	triage check src/lib.rs --finding 12:overflow:High
//	triage prompt src/lib.rs --finding 12:overflow:High   # print the prompt only
//	triage classify reply.txt                # classify a saved model reply
//	triage doctor                            # check credentials and endpoint
//
// The API key is read from OPENAI_API_KEY. Exit codes: 0 success, 1 a Valid
// verdict with --fail-on-valid, 2 usage error, 3 credentials, 4 runtime error.
package main
