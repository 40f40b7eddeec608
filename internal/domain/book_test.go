package domain

import (
	"reflect"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Status
	}{
		{name: "checked-out", in: "checked-out", want: StatusCheckedOut},
		{name: "localized checked-out", in: "貸出中", want: StatusCheckedOut},
		{name: "held", in: "held", want: StatusHeld},
		{name: "empty", in: "", want: StatusHeld},
		{name: "unknown value", in: "lost", want: StatusHeld},
		{name: "case differs", in: "Checked-Out", want: StatusHeld},
		{name: "surrounding whitespace", in: "  checked-out ", want: StatusCheckedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStatus(tt.in); got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want bool
	}{
		{name: "title only", book: Book{Title: "Snow Country"}, want: true},
		{name: "isbn only", book: Book{ISBN: "9784480090474"}, want: true},
		{name: "id only", book: Book{ID: "abc"}, want: true},
		{name: "all blank", book: Book{Author: "somebody", Note: "note"}, want: false},
		{name: "zero value", book: Book{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.book.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "semicolons", in: "fiction;classic", want: []string{"fiction", "classic"}},
		{name: "commas", in: "fiction, classic", want: []string{"fiction", "classic"}},
		{name: "japanese comma", in: "小説、古典", want: []string{"小説", "古典"}},
		{name: "mixed separators", in: "a; b,c  d", want: []string{"a", "b", "c", "d"}},
		{name: "duplicates collapsed", in: "a;a;b", want: []string{"a", "b"}},
		{name: "empty pieces dropped", in: ";; ,", want: nil},
		{name: "empty input", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMergeTags(t *testing.T) {
	got := MergeTags([]string{"a", "b"}, []string{"b", "c"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeTags() = %v, want %v", got, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &Book{
		ID:     "x",
		Title:  "t",
		Tags:   []string{"a"},
		Extras: map[string]string{"cover": "http://example.com/c.jpg"},
	}
	c := orig.Clone()
	c.Tags[0] = "changed"
	c.Extras["cover"] = "changed"

	if orig.Tags[0] != "a" {
		t.Error("Clone() shares tags slice")
	}
	if orig.Extras["cover"] != "http://example.com/c.jpg" {
		t.Error("Clone() shares extras map")
	}
}

func TestEqual(t *testing.T) {
	a := Book{ID: "1", Title: "t", Tags: []string{"x"}, Extras: map[string]string{"k": "v"}, Status: StatusHeld}

	b := a
	b.Tags = []string{"x"}
	b.Extras = map[string]string{"k": "v"}
	if !a.Equal(&b) {
		t.Error("identical books reported unequal")
	}

	c := a
	c.Extras = map[string]string{"k": "other"}
	if a.Equal(&c) {
		t.Error("books with differing extras reported equal")
	}

	d := a
	d.Tags = []string{"x", "y"}
	if a.Equal(&d) {
		t.Error("books with differing tags reported equal")
	}
}
