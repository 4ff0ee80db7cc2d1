// Package domain holds the core model of an idempotency check: test cases,
// the tagged body value tree, response snapshots, findings, violations and
// verdicts. It depends on nothing outside the standard library and yaml
// node decoding, so every other package can share its vocabulary.
package domain
