package classify

import (
	"context"
	"strings"
	"testing"
)

// fakeSampler serves canned page text.
type fakeSampler struct {
	count   int
	pages   map[int]string
	margins map[int]string
}

func (s *fakeSampler) PageCount() int { return s.count }

func (s *fakeSampler) PlainText(_ context.Context, i int) (string, error) {
	return s.pages[i], nil
}

func (s *fakeSampler) MarginText(_ context.Context, i int) (string, error) {
	return s.margins[i], nil
}

func TestDetermineTypeLongDocuments(t *testing.T) {
	tests := []struct {
		name  string
		pages map[int]string
		want  DocumentType
	}{
		{
			name:  "thesis keyword english",
			pages: map[int]string{2: "A dissertation submitted in partial fulfillment"},
			want:  TypeThesis,
		},
		{
			name:  "thesis keyword chinese",
			pages: map[int]string{0: "博士学位论文"},
			want:  TypeThesis,
		},
		{
			name:  "no thesis keywords",
			pages: map[int]string{0: "CHAPTER ONE\nIn the beginning"},
			want:  TypeBook,
		},
		{
			name:  "master embedded in word does not count",
			pages: map[int]string{0: "The Remastered Edition"},
			want:  TypeBook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSampler{count: 120, pages: tt.pages}
			if got := DetermineType(context.Background(), s, nil, nil); got != tt.want {
				t.Errorf("DetermineType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetermineTypeShortDocuments(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		margins map[int]string
		want    DocumentType
	}{
		{
			name:  "chapter knockout",
			first: "Edited by A. Scholar\nISBN 978-3-11-012345-6",
			want:  TypeBookChapter,
		},
		{
			name:  "journal knockout",
			first: "Journal of Asian Studies",
			want:  TypeJournal,
		},
		{
			name:    "journal knockout in margins",
			first:   "An Article Title",
			margins: map[int]string{1: "Zeitschrift für Ethnologie"},
			want:    TypeJournal,
		},
		{
			name:  "volume and issue",
			first: "Vol. 12, No. 3, March 2018",
			want:  TypeJournal,
		},
		{
			name:  "chinese publisher knockout",
			first: "上海古籍出版社",
			want:  TypeBookChapter,
		},
		{
			name:  "default",
			first: "An Unmarked Offprint",
			want:  TypeJournal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSampler{
				count:   20,
				pages:   map[int]string{0: tt.first},
				margins: tt.margins,
			}
			if got := DetermineType(context.Background(), s, nil, nil); got != tt.want {
				t.Errorf("DetermineType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetermineTypeKnockoutPrecedence(t *testing.T) {
	// Chapter knockouts outrank journal knockouts, matching the rule
	// hierarchy.
	s := &fakeSampler{
		count: 20,
		pages: map[int]string{0: "ISBN 123\nJournal of Examples"},
	}
	if got := DetermineType(context.Background(), s, nil, nil); got != TypeBookChapter {
		t.Errorf("DetermineType = %q, want bookchapter", got)
	}
}

func TestDetermineTypePageNumberProbe(t *testing.T) {
	s := &fakeSampler{
		count: 20,
		pages: map[int]string{0: "An Unmarked Offprint"},
	}

	probed := false
	probe := func(context.Context) (int, bool) {
		probed = true
		return 186, true
	}

	if got := DetermineType(context.Background(), s, probe, nil); got != TypeJournal {
		t.Errorf("DetermineType = %q, want journal via probe", got)
	}
	if !probed {
		t.Error("probe was not consulted")
	}

	// A low starting page number is not evidence either way.
	lowProbe := func(context.Context) (int, bool) { return 1, true }
	if got := DetermineType(context.Background(), s, lowProbe, nil); got != TypeJournal {
		t.Errorf("DetermineType = %q, want journal default", got)
	}
}

func TestFrontMatterTextLowercases(t *testing.T) {
	s := &fakeSampler{
		count: 3,
		pages: map[int]string{0: "EDITED BY SOMEONE"},
	}
	text := frontMatterText(context.Background(), s, nil)
	if !strings.Contains(text, "edited by someone") {
		t.Errorf("frontMatterText = %q, want lowercased content", text)
	}
}
