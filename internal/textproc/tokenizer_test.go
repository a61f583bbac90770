package textproc

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "punctuation separates", text: "Hello, World! foo.bar", want: []string{"hello", "world", "foo", "bar"}},
		{name: "hyphen kept inside field", text: "e-mail --dash-- x", want: []string{"e-mail", "--dash--", "x"}},
		{name: "polish diacritics preserved", text: "Żółć Łódź", want: []string{"żółć", "łódź"}},
		{name: "digits are token runes", text: "GPT4 2024r", want: []string{"gpt4", "2024r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		field  string
		want   string
		wantOK bool
	}{
		{field: "--dash--", want: "dash", wantOK: true},
		{field: "ab", want: "ab", wantOK: false},
		{field: "-ab-", want: "ab", wantOK: false},
		{field: "the", want: "the", wantOK: false},
		{field: "który", want: "który", wantOK: false},
		{field: "żółw", want: "żółw", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := Clean(tt.field)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Clean(%q) = (%q, %v), want (%q, %v)", tt.field, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stop words and short tokens dropped",
			text: "The content marketing drives content growth, and it's great for SEO!",
			want: []string{"content", "marketing", "drives", "content", "growth", "great", "seo"},
		},
		{
			name: "polish inflections stay distinct",
			text: "Marketing treści oraz treść marketingu",
			want: []string{"marketing", "treści", "treść", "marketingu"},
		},
		{
			name: "all filtered",
			text: "a to i w na -- ?!",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.text); !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Content MARKETING \n"); got != "content marketing" {
		t.Errorf("Normalize() = %q, want %q", got, "content marketing")
	}
	// Decomposed "ó" (o + combining acute) composes to the same string as the precomposed form.
	if Normalize("kr\u00f3l") != Normalize("Kro\u0301l") {
		t.Error("Normalize() should compose decomposed diacritics")
	}
}

func TestStopWords(t *testing.T) {
	for _, w := range []string{"the", "and", "się", "ponieważ", "also"} {
		if !IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"content", "marketing", "treść"} {
		if IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = true, want false", w)
		}
	}
	if n := StopWordCount(); n <= 150 {
		t.Errorf("StopWordCount() = %d, want more than 150", n)
	}
}
