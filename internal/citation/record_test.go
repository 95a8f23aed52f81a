package citation

import "testing"

func TestMergePageNumbers(t *testing.T) {
	r := NewRecord("/scans/article.pdf", 20)

	r.MergePageNumbers("", MethodEngine)
	if r.PageNumbers != "" || r.PageNumberMethod != "" {
		t.Errorf("empty merge must not touch the record: %+v", r)
	}

	r.MergePageNumbers("186-205", MethodEngine)
	if r.PageNumbers != "186-205" || r.PageNumberMethod != MethodEngine {
		t.Errorf("merge = %+v, want 186-205/engine", r)
	}
}

func TestNewRecordIDs(t *testing.T) {
	a := NewRecord("/scans/a.pdf", 10)
	b := NewRecord("/scans/b.pdf", 10)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("records must get distinct non-empty IDs: %q, %q", a.ID, b.ID)
	}
}

func TestFormatPages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"186-205", "pp. 186-205"},
		{"42", "p. 42"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatPages(tt.input); got != tt.want {
			t.Errorf("FormatPages(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
