package checkcmd

import "testing"

func TestCheckFileCommandValidate(t *testing.T) {
	if err := (CheckFileCommand{Path: "index.md"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (CheckFileCommand{Path: "  "}).Validate(); err == nil {
		t.Fatal("expected blank path to fail")
	}
	if err := (CheckFileCommand{}).Validate(); err == nil {
		t.Fatal("expected missing path to fail")
	}
}

func TestCheckDirectoryCommandValidate(t *testing.T) {
	if err := (CheckDirectoryCommand{Directory: "lesson"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
	if err := (CheckDirectoryCommand{}).Validate(); err == nil {
		t.Fatal("expected missing directory to fail")
	}
}

func TestMessageTypes(t *testing.T) {
	if got := (CheckFileCommand{}).Type(); got != "lessonlint.check.file" {
		t.Fatalf("unexpected type: %q", got)
	}
	if got := (CheckDirectoryCommand{}).Type(); got != "lessonlint.check.directory" {
		t.Fatalf("unexpected type: %q", got)
	}
}
