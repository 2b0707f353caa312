// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/linediff/internal/cacheutil"
	"github.com/tfctl/linediff/internal/command"
	"github.com/tfctl/linediff/internal/config"
	"github.com/tfctl/linediff/internal/log"
	"github.com/tfctl/linediff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// helpRequested reports whether --help or -h appears anywhere.
func helpRequested(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// initAndRunApp initializes the app and runs it, returning the exit code.
// Usage errors exit 1 and every other failure exits 2.
func initAndRunApp(args []string, stdout, stderr io.Writer) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 2
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(stderr, err)
		log.Debugf("app run err: err=%v", err)

		var usageErr *command.UsageError
		if errors.As(err, &usageErr) {
			return 1
		}
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, os.Stdout) {
		return 0
	}

	// If --help appears anywhere, skip arg processing and let the CLI handle it.
	if !helpRequested(args) {
		args = processSetOnly(args)
		args = deduplicateFlags(args)
		log.Debugf("args after set processing: args=%v", args)
	}

	return initAndRunApp(args, os.Stdout, os.Stderr)
}

// setInsertIdx is where set arguments go when no explicit @set is given:
// right after the binary, or after the subcommand name.
func setInsertIdx(args []string) int {
	if len(args) > 1 && (args[1] == "serve" || args[1] == "view") {
		return 2 //nolint:mnd
	}
	return 1
}

// processSetOnly expands an @set argument in place with the flags stored under
// sets.<name> in the config file. Without an explicit @set, sets.defaults is
// injected ahead of the user's own arguments so that they win during
// deduplication.
func processSetOnly(args []string) []string {
	for i, a := range args {
		if i == 0 || !strings.HasPrefix(a, "@") || len(a) == 1 {
			continue
		}
		rest := append([]string{}, args[i+1:]...)
		args = append(args[:i:i], rest...)
		return injectConfigSet(args, "sets."+a[1:], i)
	}

	if len(args) == 0 {
		return args
	}
	return injectConfigSet(args, "sets.defaults", setInsertIdx(args))
}

// injectConfigSet inserts the whitespace-split entries of the config list at
// key into args at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil || len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// argUnit is one flag with its optional value, or one positional argument.
type argUnit struct {
	name   string
	tokens []string
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last one
// wins. A flag consumes the following token as its value unless it uses the
// --flag=value form or the next token is itself a flag. Everything after "--"
// is left alone.
func deduplicateFlags(args []string) []string {
	if len(args) <= 1 {
		return args
	}

	var units []argUnit
	i := 1
	for i < len(args) {
		a := args[i]
		if a == "--" {
			units = append(units, argUnit{tokens: args[i:]})
			break
		}
		if !isFlag(a) {
			units = append(units, argUnit{tokens: []string{a}})
			i++
			continue
		}

		name := strings.TrimLeft(a, "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			units = append(units, argUnit{name: name[:eq], tokens: []string{a}})
			i++
			continue
		}
		if i+1 < len(args) && !isFlag(args[i+1]) && args[i+1] != "--" {
			units = append(units, argUnit{name: name, tokens: args[i : i+2]})
			i += 2
			continue
		}
		units = append(units, argUnit{name: name, tokens: []string{a}})
		i++
	}

	last := map[string]int{}
	for idx, u := range units {
		if u.name != "" {
			last[u.name] = idx
		}
	}

	result := []string{args[0]}
	for idx, u := range units {
		if u.name != "" && last[u.name] != idx {
			continue
		}
		result = append(result, u.tokens...)
	}
	return result
}

func isFlag(s string) bool {
	return len(s) > 1 && strings.HasPrefix(s, "-")
}
