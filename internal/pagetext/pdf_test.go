package pagetext

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func run(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: size}
}

func TestGroupRunsSingleLine(t *testing.T) {
	runs := []pdf.Text{
		run("1", 300, 20, 6, 10),
		run("8", 306, 20, 6, 10),
		run("6", 312, 20, 6, 10),
	}

	frags := groupRuns(runs, 600)
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1: %+v", len(frags), frags)
	}
	if frags[0].Text != "186" {
		t.Errorf("text = %q, want \"186\"", frags[0].Text)
	}
	mid := frags[0].X
	if mid < 300 || mid > 320 {
		t.Errorf("midpoint = %v, want within the run", mid)
	}
}

func TestGroupRunsSplitsClusters(t *testing.T) {
	// A left-hand page number and a centered running head on the same
	// line must come out as separate fragments.
	runs := []pdf.Text{
		run("42", 30, 760, 12, 10),
		run("Journal", 250, 760, 40, 10),
		run(" of ", 290, 760, 18, 10),
		run("Things", 308, 760, 36, 10),
	}

	frags := groupRuns(runs, 600)
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2: %+v", len(frags), frags)
	}
	if frags[0].Text != "42" {
		t.Errorf("first fragment = %q, want \"42\"", frags[0].Text)
	}
	if frags[1].Text != "Journal of Things" {
		t.Errorf("second fragment = %q, want \"Journal of Things\"", frags[1].Text)
	}
}

func TestGroupRunsSplitsLines(t *testing.T) {
	runs := []pdf.Text{
		run("Running Head", 200, 770, 80, 10),
		run("187", 200, 755, 18, 10),
	}

	frags := groupRuns(runs, 600)
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2: %+v", len(frags), frags)
	}
	// Top of page sorts first.
	if frags[0].Text != "Running Head" || frags[1].Text != "187" {
		t.Errorf("fragments = %+v, want running head first", frags)
	}
}

func TestGroupRunsEmpty(t *testing.T) {
	frags := groupRuns(nil, 600)
	if len(frags) != 0 {
		t.Errorf("got %d fragments, want 0", len(frags))
	}
}
