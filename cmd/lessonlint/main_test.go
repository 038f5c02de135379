package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lessonlint "github.com/goliatone/go-lessonlint"
)

const conformingTopic = `---
layout: topic
title: Intro
subtitle: Getting started
minutes: 15
---
> ## Learning Objectives {.objectives}
>
> *   Explain what a shell is.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunCheckDefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01-intro.md", conformingTopic)
	t.Chdir(dir)

	var out bytes.Buffer
	err := runCheck(nil, &out)
	// The directory is missing most required lesson files.
	if !errors.Is(err, lessonlint.ErrConformance) {
		t.Fatalf("expected ErrConformance, got %v", err)
	}
}

func TestRunCheckPassesConformingFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "01-intro.md", conformingTopic)

	var out bytes.Buffer
	if err := runCheck([]string{path}, &out); err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output for a clean file, got %q", out.String())
	}
}

func TestRunCheckPrintsDiagnosticsAndSignalsFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "01-intro.md", "---\nlayout: topic\n---\nFIXME\n")

	var out bytes.Buffer
	err := runCheck([]string{path}, &out)
	if !errors.Is(err, lessonlint.ErrConformance) {
		t.Fatalf("expected ErrConformance, got %v", err)
	}
	if !strings.Contains(out.String(), "[marker]") {
		t.Fatalf("expected marker diagnostic in output, got %q", out.String())
	}
}

func TestRunCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01-intro.md", conformingTopic)

	var out bytes.Buffer
	err := runCheck([]string{dir}, &out)
	// The directory is missing most required lesson files.
	if !errors.Is(err, lessonlint.ErrConformance) {
		t.Fatalf("expected ErrConformance, got %v", err)
	}
	if !strings.Contains(out.String(), "missing required file") {
		t.Fatalf("expected required-file diagnostics, got %q", out.String())
	}
}

func TestRunCheckExplicitTemplate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lesson.md", conformingTopic)

	var out bytes.Buffer
	if err := runCheck([]string{"-template", "topic", path}, &out); err != nil {
		t.Fatalf("expected explicit template run to pass, got %v", err)
	}
}

func TestRunCheckCustomMarker(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lesson.md", strings.Replace(conformingTopic, "Explain what a shell is.", "XXX to be written", 1))

	var out bytes.Buffer
	err := runCheck([]string{"-template", "topic", "-marker", "XXX", path}, &out)
	if !errors.Is(err, lessonlint.ErrConformance) {
		t.Fatalf("expected ErrConformance, got %v", err)
	}
}

func TestRunCheckMissingPath(t *testing.T) {
	var out bytes.Buffer
	err := runCheck([]string{filepath.Join(t.TempDir(), "absent.md")}, &out)
	if err == nil || errors.Is(err, lessonlint.ErrConformance) {
		t.Fatalf("expected operational error, got %v", err)
	}
}

func TestRunCheckCustomDefinitions(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "templates.yaml", `templates:
  - name: note
    patterns:
      - "^note-.*"
`)
	path := writeFile(t, dir, "note-shell.md", "---\n---\nshort note\n")

	var out bytes.Buffer
	err := runCheck([]string{"-templates", defs, path}, &out)
	// The note template declares no front matter labels, so an empty block fails.
	if !errors.Is(err, lessonlint.ErrConformance) {
		t.Fatalf("expected ErrConformance, got %v", err)
	}
}
