// Package verdict decides whether static-analysis findings are real by
// asking a chat model and reading its reply.
//
// [BuildPrompt] embeds a file and its Critical/High findings (or all findings
// when requested) in a per-language template. Only "Rust" and
// "Solidity-Ethereum" are supported; any other tag fails with
// [ErrUnsupportedLanguage] before a request is built.
//
// [Classify] maps the reply to "Valid" or "False positive" by substring
// matching against a fixed phrase table. Two phrases are matched against the
// raw reply and the rest against its lowercase form. An empty reply is a
// false positive.
//
// [Validator.ValidateFiles] runs many files with bounded concurrency and
// [BuildReport] turns the results into a [Report] for the output writers.
package verdict
