package main

import (
	"fmt"
	"os"
	"strings"

	"funnel-cli/internal/cli"
)

func main() {
	os.Args = rewriteArgs(os.Args)

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rewriteArgs expands a bare record id into its show command, so
// `funnel contact-ab12cd34` works as a shortcut for
// `funnel contacts show contact-ab12cd34`.
func rewriteArgs(args []string) []string {
	if len(args) != 2 {
		return args
	}
	id := args[1]

	var sub string
	switch {
	case strings.HasPrefix(id, "contact-"):
		sub = "contacts"
	case strings.HasPrefix(id, "company-"):
		sub = "companies"
	case strings.HasPrefix(id, "deal-"):
		sub = "deals"
	case strings.HasPrefix(id, "task-"):
		sub = "tasks"
	case strings.HasPrefix(id, "act-"):
		sub = "activities"
	default:
		return args
	}
	return []string{args[0], sub, "show", id}
}
