package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-lessonlint/internal/template"
)

const minimalTopic = `---
layout: topic
title: Intro
subtitle: Getting started
minutes: 15
---
> ## Learning Objectives {.objectives}
>
> *   Explain what a shell is.
`

func writeLessonFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidateFileWithExplicitTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeLessonFile(t, dir, "lesson.md", minimalTopic)

	r := New(template.NewRegistry())
	report, err := r.ValidateFile(context.Background(), path, template.TemplateTopic)
	if err != nil {
		t.Fatalf("validate file: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected valid report, got %v", report.Diagnostics)
	}
	if report.Template != template.TemplateTopic {
		t.Fatalf("unexpected template: %q", report.Template)
	}
}

func TestValidateFileDispatchesByName(t *testing.T) {
	dir := t.TempDir()
	path := writeLessonFile(t, dir, "01-intro.md", minimalTopic)

	r := New(template.NewRegistry())
	report, err := r.ValidateFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("validate file: %v", err)
	}
	if report.Template != template.TemplateTopic {
		t.Fatalf("expected topic dispatch, got %q", report.Template)
	}
}

func TestValidateFileDispatchFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeLessonFile(t, dir, "setup.md", minimalTopic)

	r := New(template.NewRegistry())
	report, err := r.ValidateFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("validate file: %v", err)
	}
	if report.Valid() {
		t.Fatal("expected dispatch failure")
	}
	if report.Diagnostics[0].Check != CheckDispatch {
		t.Fatalf("unexpected check: %q", report.Diagnostics[0].Check)
	}
}

func TestValidateFileSkipsListedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeLessonFile(t, dir, "README.md", "anything goes here, even FIXME\n")

	r := New(template.NewRegistry())
	report, err := r.ValidateFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("validate file: %v", err)
	}
	if !report.Skipped || !report.Valid() {
		t.Fatalf("expected skipped passing report, got %+v", report)
	}
}

func TestValidateFileUnreadableDocument(t *testing.T) {
	r := New(template.NewRegistry())
	report, err := r.ValidateFile(context.Background(), filepath.Join(t.TempDir(), "01-absent.md"), "")
	if err != nil {
		t.Fatalf("validate file: %v", err)
	}
	if report.Valid() || report.Diagnostics[0].Check != CheckDocument {
		t.Fatalf("expected document diagnostic, got %+v", report)
	}
}

func TestValidateFileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(template.NewRegistry())
	if _, err := r.ValidateFile(ctx, "01-intro.md", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestValidateDirectoryReportsMissingRequiredFiles(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "01-intro.md", minimalTopic)

	r := New(template.NewRegistry())
	batch, err := r.ValidateDirectory(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("validate directory: %v", err)
	}
	if batch.Valid() {
		t.Fatal("expected missing required files to fail the batch")
	}

	var missing []string
	for _, d := range batch.Diagnostics {
		if d.Check == CheckDirectory && strings.Contains(d.Message, "missing required file") {
			missing = append(missing, d.Message)
		}
	}
	// Everything except 01-*.md is absent.
	if len(missing) != 7 {
		t.Fatalf("expected 7 missing-file diagnostics, got %d: %v", len(missing), missing)
	}
	if len(batch.Reports) != 1 {
		t.Fatalf("expected 1 document report, got %d", len(batch.Reports))
	}
}

func TestValidateDirectoryEmpty(t *testing.T) {
	r := New(template.NewRegistry())
	batch, err := r.ValidateDirectory(context.Background(), t.TempDir(), "")
	if err != nil {
		t.Fatalf("validate directory: %v", err)
	}
	if batch.Valid() {
		t.Fatal("expected empty directory to fail")
	}

	found := false
	for _, d := range batch.Diagnostics {
		if strings.Contains(d.Message, "no markdown files") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected empty-directory diagnostic, got %v", batch.Diagnostics)
	}
}

func TestValidateDirectoryKeepsGoingPastBadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "01-broken.md", "---\nlayout: [unclosed\n---\nbody\n")
	writeLessonFile(t, dir, "02-loops.md", minimalTopic)

	r := New(template.NewRegistry())
	batch, err := r.ValidateDirectory(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("validate directory: %v", err)
	}
	if len(batch.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(batch.Reports))
	}
	if batch.Reports[0].Valid() {
		t.Fatal("expected the malformed document to fail")
	}
	if !batch.Reports[1].Valid() {
		t.Fatalf("expected the clean document to pass, got %v", batch.Reports[1].Diagnostics)
	}
}

func TestValidateDirectorySkipsReadme(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "README.md", "informal notes with FIXME\n")
	writeLessonFile(t, dir, "01-intro.md", minimalTopic)

	r := New(template.NewRegistry())
	batch, err := r.ValidateDirectory(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("validate directory: %v", err)
	}

	var skipped int
	for _, report := range batch.Reports {
		if report.Skipped {
			skipped++
		}
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped report, got %d", skipped)
	}
}

func TestValidateDirectoryAssignsRunID(t *testing.T) {
	dir := t.TempDir()
	writeLessonFile(t, dir, "01-intro.md", minimalTopic)

	r := New(template.NewRegistry())
	first, err := r.ValidateDirectory(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("validate directory: %v", err)
	}
	second, err := r.ValidateDirectory(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("validate directory: %v", err)
	}
	if first.RunID == second.RunID {
		t.Fatal("expected distinct run identifiers")
	}
}

func TestRunnerMarkerOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeLessonFile(t, dir, "01-intro.md", strings.Replace(minimalTopic, "Explain what a shell is.", "XXX fill this in", 1))

	r := New(template.NewRegistry(), WithMarker("XXX"))
	report, err := r.ValidateFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("validate file: %v", err)
	}
	if report.Valid() {
		t.Fatal("expected custom marker to be detected")
	}
}
