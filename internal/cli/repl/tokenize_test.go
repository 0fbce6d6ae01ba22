package repl

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"post list", []string{"post", "list"}},
		{"  post   get\t12 ", []string{"post", "get", "12"}},
		{`post new --text 'a b'`, []string{"post", "new", "--text", "a b"}},
		{`post new --text "it's"`, []string{"post", "new", "--text", "it's"}},
		{`search --q=a' 'b`, []string{"search", "--q=a b"}},
		{`x ''`, []string{"x", ""}},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.line)
		if err != nil {
			t.Errorf("Tokenize(%q) error = %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestTokenize_Unterminated(t *testing.T) {
	for _, line := range []string{`post 'open`, `post "open`} {
		if _, err := Tokenize(line); !errors.Is(err, ErrUnterminatedQuote) {
			t.Errorf("Tokenize(%q) error = %v", line, err)
		}
	}
}
