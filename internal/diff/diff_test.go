package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single word", "hello", []string{"hello"}},
		{"words", "a b", []string{"a", " ", "b"}},
		{"runs", "  a \n\tb  ", []string{"  ", "a", " \n\t", "b", "  "}},
		{"unicode", "héllo wörld", []string{"héllo", " ", "wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Tokenize(tt.input)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		original string
		improved string
		want     []Segment
	}{
		{
			name:     "both empty",
			original: "",
			improved: "",
			want:     []Segment{},
		},
		{
			name:     "all added",
			original: "",
			improved: "new text",
			want:     []Segment{{OpAdd, "new"}, {OpAdd, " "}, {OpAdd, "text"}},
		},
		{
			name:     "all removed",
			original: "old",
			improved: "",
			want:     []Segment{{OpRemove, "old"}},
		},
		{
			name:     "replacement",
			original: "the cat sat",
			improved: "the dog sat",
			want: []Segment{
				{OpEqual, "the"}, {OpEqual, " "},
				{OpAdd, "dog"}, {OpRemove, "cat"},
				{OpEqual, " "}, {OpEqual, "sat"},
			},
		},
		{
			name:     "appended block",
			original: "Write a poem.",
			improved: "Write a poem.\n\nLength: short.",
			want: []Segment{
				{OpEqual, "Write"}, {OpEqual, " "}, {OpEqual, "a"}, {OpEqual, " "}, {OpEqual, "poem."},
				{OpAdd, "\n\n"}, {OpAdd, "Length:"}, {OpAdd, " "}, {OpAdd, "short."},
			},
		},
		{
			name:     "case sensitive",
			original: "Hello",
			improved: "hello",
			want:     []Segment{{OpAdd, "hello"}, {OpRemove, "Hello"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Words(tt.original, tt.improved)); diff != "" {
				t.Errorf("Words() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWords_Identity(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"  leading and trailing  ",
		"Act as a marketer.\n\nWrite an email\tfor admins.",
	}

	for _, in := range inputs {
		segments := Words(in, in)
		for _, s := range segments {
			if s.Op != OpEqual {
				t.Errorf("Words(%q, same) produced %s segment %q", in, s.Op, s.Text)
			}
		}
		if got := Original(segments); got != in {
			t.Errorf("reconstructed %q, want %q", got, in)
		}
	}
}

func TestWords_Reconstruction(t *testing.T) {
	pairs := [][2]string{
		{"Write a good launch plan for my product.", "Write a launch plan for first-time founders.\n\nOutput format: bullets."},
		{"a b c d", "d c b a"},
		{"  spaced   out  ", "spaced out"},
		{"Email {{name}} about TODO", "Email [insert value] about [insert value]"},
		{"", "only new"},
		{"only old", ""},
	}

	for _, p := range pairs {
		segments := Words(p[0], p[1])
		if got := Original(segments); got != p[0] {
			t.Errorf("Original() = %q, want %q", got, p[0])
		}
		if got := Improved(segments); got != p[1] {
			t.Errorf("Improved() = %q, want %q", got, p[1])
		}
	}
}

func TestCount(t *testing.T) {
	got := Count(Words("the cat sat", "the dog sat down"))
	want := Stats{Added: 2, Removed: 1, Equal: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Count() mismatch (-want +got):\n%s", diff)
	}
}

func TestHTML(t *testing.T) {
	segments := []Segment{
		{OpEqual, "a<b>"},
		{OpEqual, " "},
		{OpRemove, "x&y"},
		{OpAdd, "z"},
	}
	want := "<span>a&lt;b&gt;</span><span> </span><del>x&amp;y</del><ins>z</ins>"
	if got := HTML(segments); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestTerminal_Plain(t *testing.T) {
	got := Terminal(Words("the cat sat", "the dog sat"), NewTheme(false))
	want := "the {+dog+}[-cat-] sat"
	if got != want {
		t.Errorf("Terminal() = %q, want %q", got, want)
	}
}
