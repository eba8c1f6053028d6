// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Program luafmt formats Lua source files.
//
// Usage: luafmt [-i] [-r] [--set name=value[,name=value...] ...] FILE ...
//
// Each FILE is formatted and, by default, printed to standard output. With
// -i/--inplace the formatted result is written back to FILE instead. With
// -r/--recursive, any FILE that names a directory is walked and every .lua
// file under it is formatted as well.
//
// --set name=value sets a printer.Config option by name (see pkg/printer's
// Config.Set); --set may be repeated or given a comma separated list, and
// an entry with no "=value" is rejected. Config options are not accepted
// as flags of their own name: --max_width=80 is an unknown option.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luafmt/luafmt/pkg/format"
	"github.com/luafmt/luafmt/pkg/indent"
	"github.com/luafmt/luafmt/pkg/printer"
	"github.com/pborman/getopt"
)

var stop = os.Exit

func main() {
	var inplace, recursive, help bool
	var rawOpts []string

	getopt.BoolVarLong(&inplace, "inplace", 'i', "format files in place instead of writing to stdout")
	getopt.BoolVarLong(&recursive, "recursive", 'r', "recurse into directory arguments")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.ListVarLong(&rawOpts, "set", 0, "comma separated name=value printer.Config options", "NAME=VALUE[,NAME=VALUE...]")
	getopt.SetParameters("FILE ...")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(indent.NewWriter(os.Stderr, "  "))
		stop(1)
		return
	}

	if help {
		getopt.CommandLine.PrintUsage(indent.NewWriter(os.Stderr, "  "))
		stop(0)
		return
	}

	cfg := &printer.Config{}
	if err := applyOpts(cfg, rawOpts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
		return
	}

	args := getopt.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "luafmt: no files given")
		getopt.PrintUsage(indent.NewWriter(os.Stderr, "  "))
		stop(1)
		return
	}

	var files []string
	for _, arg := range args {
		found, err := expandPath(arg, recursive)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		files = append(files, found...)
	}
	sort.Strings(files)

	exit := 0
	for _, path := range files {
		if err := processFile(path, cfg, inplace); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exit = 1
		}
	}
	stop(exit)
}

// applyOpts parses `NAME=VALUE` strings (collected from repeated --set
// flags) and applies each via cfg.Set, following the original
// formatter's main.rs `--name=value` regex-driven option parsing,
// adapted to getopt's repeatable list-flag idiom.
func applyOpts(cfg *printer.Config, rawOpts []string) error {
	for _, raw := range rawOpts {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("luafmt: malformed option %q, expected name=value", raw)
		}
		if err := cfg.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("luafmt: %w", err)
		}
	}
	return nil
}

// expandPath resolves one command-line argument to a list of .lua files:
// itself, if it names a file; every .lua file beneath it, if it names a
// directory and recursive is set (mirroring the teacher's
// pkg/yang/file.go PathsWithModules' filepath.Walk pattern, generalized
// from "collect containing directories of .yang files" to "collect .lua
// file paths directly").
func expandPath(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("luafmt: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	if !recursive {
		return nil, fmt.Errorf("luafmt: %s is a directory (use -r to recurse)", root)
	}

	var files []string
	err = filepath.Walk(root, func(p string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !fi.IsDir() && strings.HasSuffix(p, ".lua") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("luafmt: %w", err)
	}
	return files, nil
}

// processFile formats one file and either prints the result to stdout or
// rewrites it in place via a temp-file-then-rename, matching main.rs's
// use of an atomic write so a mid-format failure never truncates the
// original file.
func processFile(path string, cfg *printer.Config, inplace bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("luafmt: %w", err)
	}

	out, err := format.File(string(data), path, cfg)
	if err != nil {
		return err
	}

	if !inplace {
		fmt.Print(out)
		return nil
	}
	return writeInPlace(path, out)
}

func writeInPlace(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".luafmt-*")
	if err != nil {
		return fmt.Errorf("luafmt: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("luafmt: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("luafmt: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("luafmt: %w", err)
	}
	return nil
}
