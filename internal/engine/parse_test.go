package engine

import "testing"

func TestParsePageNumber(t *testing.T) {
	p := NewTokenParser(1, 9999, false)

	tests := []struct {
		name  string
		text  string
		want  int
		found bool
	}{
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"page n of m", "Page 3 of 20", 3, true},
		{"page n of m lowercase", "page 186 of 205", 186, true},
		{"cjk combined", "第5頁，共20頁", 5, true},
		{"cjk combined simplified", "第12页，共30页", 12, true},
		{"decorated bullets", "·190·", 190, true},
		{"decorated dashes", "- 42 -", 42, true},
		{"decorated mixed", "—— 7 ——", 7, true},
		{"cjk numbered", "第3页", 3, true},
		{"cjk numbered traditional", "第15頁", 15, true},
		{"cjk suffix", "12页", 12, true},
		{"cjk prefix", "页 9", 9, true},
		{"english page", "Page 42", 42, true},
		{"english p dot", "p. 17", 17, true},
		{"english p dot no space", "P.3", 3, true},
		{"japanese", "25ページ", 25, true},
		{"bracketed square", "[7]", 7, true},
		{"bracketed paren", "( 19 )", 19, true},
		{"bare number", "186", 186, true},
		{"bare number padded", "  205  ", 205, true},
		{"bare roman lower", "xiv", 14, true},
		{"bare roman upper", "XLII", 42, true},
		{"zero rejected", "0", 0, false},
		{"out of range", "10000", 0, false},
		{"five digits", "12345", 0, false},
		{"running head", "Journal of Asian Studies", 0, false},
		{"date not whole fragment", "March 2018", 0, false},
		{"embedded number rejected", "Vol 12 No 3", 0, false},
		{"mixed letters", "12a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.ParsePageNumber(tt.text)
			if ok != tt.found || got != tt.want {
				t.Errorf("ParsePageNumber(%q) = (%d, %v), want (%d, %v)",
					tt.text, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestParsePageNumberPriority(t *testing.T) {
	p := NewTokenParser(1, 9999, false)

	// The combined marker must yield N, not M, even though M also looks
	// like a page number.
	if got, ok := p.ParsePageNumber("Page 3 of 20"); !ok || got != 3 {
		t.Errorf("combined marker: got (%d, %v), want (3, true)", got, ok)
	}
	// Decorated digits win over the bare-number reading of the inner text.
	if got, ok := p.ParsePageNumber("·190·"); !ok || got != 190 {
		t.Errorf("decorated: got (%d, %v), want (190, true)", got, ok)
	}
}

func TestParseTotalPages(t *testing.T) {
	p := NewTokenParser(1, 9999, false)

	tests := []struct {
		text  string
		want  int
		found bool
	}{
		{"Page 3 of 20", 20, true},
		{"第5頁，共20頁", 20, true},
		{"共30页", 30, true},
		{"Page 3", 0, false},
		{"186", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := p.ParseTotalPages(tt.text)
		if ok != tt.found || got != tt.want {
			t.Errorf("ParseTotalPages(%q) = (%d, %v), want (%d, %v)",
				tt.text, got, ok, tt.want, tt.found)
		}
	}
}

func TestParsePageNumberStrictRoman(t *testing.T) {
	lenient := NewTokenParser(1, 9999, false)
	strict := NewTokenParser(1, 9999, true)

	if _, ok := lenient.ParsePageNumber("IIII"); !ok {
		t.Error("lenient parser should accept IIII")
	}
	if _, ok := strict.ParsePageNumber("IIII"); ok {
		t.Error("strict parser should reject IIII")
	}
	if got, ok := strict.ParsePageNumber("xiv"); !ok || got != 14 {
		t.Errorf("strict parser on canonical xiv: got (%d, %v)", got, ok)
	}
}
