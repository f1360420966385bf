//go:build !windows

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	xt "golang.org/x/term"

	"github.com/ck-zhang/photopick/internal/config"
	"github.com/ck-zhang/photopick/internal/scanner"
	"github.com/ck-zhang/photopick/internal/selector"
)

var (
	version   = "0.0.0-dev"
	buildDate = ""
)

func main() {
	help := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Print version and exit")
	prefix := flag.String("prefix", "", "Upload prefix/folder path (e.g. \"japan/tokyo\")")
	targetSize := flag.Int("target-size", 0, "Target file size in KB (overrides config)")
	configPath := flag.String("config", "", "Config file path (default ~/"+config.FileName+")")
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Fprintf(os.Stdout, "photopick %s", version)
		if buildDate != "" {
			fmt.Fprintf(os.Stdout, " (%s)", buildDate)
		}
		fmt.Fprintln(os.Stdout)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fatalUsage(64, "expected exactly one folder path (see -help)")
	}
	folder := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalUsage(65, "config: %v", err)
	}
	if *targetSize > 0 {
		cfg.TargetSizeKB = *targetSize
	}

	if info, err := os.Stat(folder); err != nil {
		fatalUsage(65, "folder does not exist: %s", folder)
	} else if !info.IsDir() {
		fatalUsage(65, "path is not a directory: %s", folder)
	}

	printPlan(cfg, *prefix, folder)

	images, err := scanner.Scan(folder)
	if err != nil {
		fatalUsage(66, "%v", err)
	}
	fmt.Fprintf(os.Stderr, "Found %d valid image(s)\n\n", len(images))

	selected := images
	if isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd()) {
		selected, err = selector.Select(images)
		if errors.Is(err, selector.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Cancelled by user")
			os.Exit(130)
		}
		if err != nil {
			fatalUsage(65, "%v", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Selected %d image(s):\n", len(selected))
	for _, p := range selected {
		fmt.Fprintf(os.Stderr, "  - %s\n", filepath.Base(p))
	}
	fmt.Fprintln(os.Stderr)

	for _, p := range selected {
		fmt.Fprintln(os.Stdout, p)
	}
	os.Exit(0)
}

func usage() {
	fmt.Fprintln(os.Stdout, `photopick FOLDER

Interactive terminal image selector with inline preview via viu.
Selected paths are printed to stdout, one per line, in input order.

Options:
  -prefix PATH        Upload prefix shown in the plan summary
  -target-size KB     Target file size in KB (overrides config)
  -config PATH        Config file (default ~/`+config.FileName+`)
  -version            Print version and exit
  -help               Show this help text

Keys:
  Up / Down           Move cursor
  Space               Toggle selection
  a                   Select all / clear all
  y                   Pick the highlighted image and finish
  Enter               Confirm selection
  q / Esc / Ctrl-C    Cancel

Environment:
  PHOTOPICK_DEBUG     Write a debug log under the temp directory`)
}

func printPlan(cfg config.Config, prefix, folder string) {
	target := "s3://" + cfg.Bucket + "/"
	if prefix != "" {
		target += prefix + "/"
	}
	fmt.Fprintln(os.Stderr, "Photo Upload Manager")
	fmt.Fprintln(os.Stderr, "==================================================")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Configuration:")
	fmt.Fprintf(os.Stderr, "  Source folder:  %s\n", folder)
	fmt.Fprintf(os.Stderr, "  Bucket:         %s\n", cfg.Bucket)
	fmt.Fprintf(os.Stderr, "  AWS profile:    %s\n", cfg.AWSProfile)
	fmt.Fprintf(os.Stderr, "  Target size:    %d KB\n", cfg.TargetSizeKB)
	fmt.Fprintf(os.Stderr, "  Upload target:  %s\n", target)
	fmt.Fprintln(os.Stderr)
}

func fatalUsage(code int, format string, a ...any) {
	fmt.Fprintf(os.Stderr, "photopick: "+format+"\n", a...)
	os.Exit(code)
}

func isTerminal(fd uintptr) bool { return xt.IsTerminal(int(fd)) }
