package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON, false).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML, false).(*YAMLFormatter); !ok {
		t.Error("expected YAMLFormatter")
	}
	tf, ok := NewFormatter(FormatTable, true).(*TableFormatter)
	if !ok || !tf.Wide {
		t.Errorf("expected wide TableFormatter, got %#v", tf)
	}
	if _, ok := NewFormatter("unknown", false).(*TableFormatter); !ok {
		t.Error("unknown format should default to table")
	}
}

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Text  string `json:"text" yaml:"text"`
	Count int    `json:"count" yaml:"count"`
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sample{Name: "a<b>", Text: "みたいな", Count: 2}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"name": "a<b>"`) {
		t.Errorf("HTML should not be escaped:\n%s", out)
	}
	if !strings.Contains(out, `"text": "みたいな"`) || !strings.Contains(out, `"count": 2`) {
		t.Errorf("unexpected JSON:\n%s", out)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := []sample{{Name: "one", Count: 1}, {Name: "two", Count: 2}}
	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"- name: one", "  count: 1", "- name: two"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter(t *testing.T) {
	table := NewTable("NAME")
	table.AddRow("from-table")
	data := sample{Name: "from-data"}

	tests := []struct {
		format  Format
		want    string
		message bool
	}{
		{FormatTable, "from-table", true},
		{FormatJSON, `"name": "from-data"`, false},
		{FormatYAML, "name: from-data", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPrinter(&buf, tt.format, false)

			if err := p.Print(data, table); err != nil {
				t.Fatal(err)
			}
			p.Message("done %d", 1)

			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if strings.Contains(out, "done 1") != tt.message {
				t.Errorf("message shown = %v, want %v", !tt.message, tt.message)
			}
			if p.Human() != tt.message {
				t.Errorf("Human() = %v", p.Human())
			}
		})
	}
}

func TestPrinter_NilTableFallsBack(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable, false)
	if err := p.Print([]sample{{Name: "reflected"}}, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "reflected") || !strings.Contains(buf.String(), "NAME") {
		t.Errorf("reflection fallback output:\n%s", buf.String())
	}
}
