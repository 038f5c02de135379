package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	lessonlint "github.com/goliatone/go-lessonlint"
	"github.com/goliatone/go-lessonlint/cmd/lessonlint/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	err := runCheck(os.Args[1:], os.Stderr)
	switch {
	case errors.Is(err, lessonlint.ErrConformance):
		os.Exit(1)
	case err != nil:
		log.Fatalf("lessonlint: %v", err)
	}
}

func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("lessonlint", flag.ExitOnError)
	templateName := fs.String("template", "", "Force a template name instead of inferring it from file names")
	definitions := fs.String("templates", "", "Path to a YAML file of additional template definitions")
	marker := fs.String("marker", "", "Override the token flagged as unfinished work")
	checksum := fs.String("license-checksum", "", "Override the expected sha256 digest for LICENSE.md")
	debug := fs.Bool("debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	module, err := moduleBuilder(bootstrap.Options{
		Marker:          *marker,
		LicenseChecksum: *checksum,
		Definitions:     *definitions,
		Debug:           *debug,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()
	conformance := false

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			err = module.Module.CheckDirectory(ctx, path, *templateName, func(batch *lessonlint.BatchReport) {
				printBatch(out, batch)
			})
		} else {
			err = module.Module.CheckFile(ctx, path, *templateName, func(report *lessonlint.Report) {
				printReport(out, report)
			})
		}

		switch {
		case errors.Is(err, lessonlint.ErrConformance):
			conformance = true
		case err != nil:
			return fmt.Errorf("check %s: %w", path, err)
		}
	}

	if conformance {
		return lessonlint.ErrConformance
	}
	return nil
}

func printBatch(out io.Writer, batch *lessonlint.BatchReport) {
	for _, diagnostic := range batch.Diagnostics {
		fmt.Fprintln(out, diagnostic.String())
	}
	for _, report := range batch.Reports {
		printReport(out, report)
	}
}

func printReport(out io.Writer, report *lessonlint.Report) {
	if report == nil || report.Skipped {
		return
	}
	for _, diagnostic := range report.Diagnostics {
		fmt.Fprintln(out, diagnostic.String())
	}
}
