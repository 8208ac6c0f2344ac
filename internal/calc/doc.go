// Package calc exposes the einteger engine as named operations.
//
// A Registry maps operation names such as "mul" or "modpow" to functions
// over *einteger.EInteger operands. An Evaluator runs them under a context
// deadline and converts the engine's panics into errors, so the CLI, the
// REPL and the HTTP server all share one evaluation path. Operand parsing
// understands radix prefixes and REPL variables.
package calc
