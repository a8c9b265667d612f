// Package output provides output formatting for the treetable CLI.
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  Format
		want    any
		wantErr bool
	}{
		{FormatTable, &TableFormatter{}, false},
		{Format(""), &TableFormatter{}, false},
		{FormatJSON, &JSONFormatter{}, false},
		{FormatYAML, &YAMLFormatter{}, false},
		{Format("xml"), nil, true},
	}

	for _, tt := range tests {
		f, err := NewFormatter(tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewFormatter(%q) should fail", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewFormatter(%q) failed: %v", tt.format, err)
			continue
		}
		if f == nil {
			t.Errorf("NewFormatter(%q) returned nil", tt.format)
		}
	}
}

func TestTableRender(t *testing.T) {
	table := &Table{Headers: []string{"BUCKET", "ENTRIES"}}
	table.AddRow(0, 3)
	table.AddRow(1, 12)

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "BUCKET") {
		t.Errorf("Header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "12") {
		t.Errorf("Row line = %q", lines[2])
	}
}

func TestTableFormatter_FallbackJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]int{"entries": 7}

	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Fallback output is not JSON: %v", err)
	}
	if got["entries"] != 7 {
		t.Errorf("entries = %d, want 7", got["entries"])
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}{"demo", 42}

	if err := (&JSONFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"size": 42`) {
		t.Errorf("Output missing field:\n%s", buf.String())
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"name": "demo", "size": 42}

	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(buf.String(), "size: 42") {
		t.Errorf("Output missing field:\n%s", buf.String())
	}
}
