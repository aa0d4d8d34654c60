package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// GetFlag gets an expected boolean flag, or aborts if the flag is missing.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetString gets an expected string flag, or aborts if the flag is missing.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetStringArray gets an expected repeatable string flag, or aborts if the
// flag is missing.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// parseDefines turns a `-D NAME[=VAL]` list into the map pkg/config.Options
// expects, a missing `=VAL` defaulting to "1" (spec.md §6).
func parseDefines(defs []string) map[string]string {
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		if name, val, ok := strings.Cut(d, "="); ok {
			out[name] = val
		} else {
			out[d] = "1"
		}
	}
	return out
}
