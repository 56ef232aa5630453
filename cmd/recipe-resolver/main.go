// Package main provides the CLI entrypoint for recipe-resolver.
//
// recipe-resolver loads a YAML recipe of UI components and reports, for every
// property of every embedded instance, the declared variables it ultimately
// reads, with redirection chains flattened.
//
// Commands: resolve | check | listeners
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
