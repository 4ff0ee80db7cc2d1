// Package main is the entry point for the idemcheck CLI.
package main

import "github.com/Krishnan9074/IdempotentCheck/internal/cli"

func main() {
	cli.Execute()
}
