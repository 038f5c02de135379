package engine

import "testing"

func TestReportAggregatesValidity(t *testing.T) {
	report := NewReport("index.md", "index")
	if !report.Valid() {
		t.Fatal("expected fresh report to be valid")
	}

	report.AddWarning(CheckIntro, "missing introduction")
	if report.Valid() {
		t.Fatal("expected warning to fail the aggregate")
	}

	report.AddErrorAt(CheckMarker, 3, "marker found")
	if len(report.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(report.Diagnostics))
	}
	if report.Diagnostics[0].Severity != SeverityWarning {
		t.Fatalf("unexpected severity: %v", report.Diagnostics[0].Severity)
	}
	if report.Diagnostics[1].Line != 3 {
		t.Fatalf("unexpected line: %d", report.Diagnostics[1].Line)
	}
}

func TestSkippedReportPasses(t *testing.T) {
	report := SkippedReport("README.md")
	if !report.Valid() || !report.Skipped {
		t.Fatalf("expected valid skipped report, got %+v", report)
	}
}

func TestDiagnosticString(t *testing.T) {
	cases := []struct {
		diagnostic Diagnostic
		want       string
	}{
		{
			Diagnostic{File: "index.md", Line: 4, Check: CheckMarker, Message: "marker found"},
			"index.md:4: [marker] marker found",
		},
		{
			Diagnostic{File: "index.md", Check: CheckHeadings, Message: "missing heading"},
			"index.md: [headings] missing heading",
		},
		{
			Diagnostic{Check: CheckFrontMatter, Message: "missing block"},
			"<input>: [front-matter] missing block",
		},
	}

	for _, tc := range cases {
		if got := tc.diagnostic.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}
