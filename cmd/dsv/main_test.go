package main

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/dsv/pkg/export"
	"github.com/vanderheijden86/dsv/pkg/model"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"5,2,8", []int{5, 2, 8}, false},
		{" 5, -2 ,8,", []int{5, -2, 8}, false},
		{"5,x", nil, true},
		{"1.5", nil, true},
	}
	for _, tt := range tests {
		got, err := parseValues(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseValues(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseValues(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseValues(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestBuildTree(t *testing.T) {
	tr := buildTree([]int{5, 2, 8}, 0, 100, nil)
	if got := tr.Values(model.OrderIn); len(got) != 3 || got[0] != 2 || got[1] != 5 || got[2] != 8 {
		t.Errorf("inorder = %v, want [2 5 8]", got)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	tr = buildTree(nil, 7, 100, rng)
	if tr.Len() != 7 || tr.Height() != 3 {
		t.Errorf("random tree has %d nodes, height %d", tr.Len(), tr.Height())
	}
}

func TestBuildTreeSeedRepeats(t *testing.T) {
	a := buildTree(nil, 10, 50, newRand(99))
	b := buildTree(nil, 10, 50, newRand(99))
	if a.String() != b.String() {
		t.Errorf("same seed gave different trees:\n%s\n%s", a, b)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats([]string{"svg", "markdown", "db"})
	if err != nil {
		t.Fatalf("parseFormats: %v", err)
	}
	want := []export.Format{export.FormatSVG, export.FormatMarkdown, export.FormatSQLite}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("format %d = %s, want %s", i, got[i], want[i])
		}
	}
	if _, err := parseFormats(nil); err == nil {
		t.Error("Expected error for no formats")
	}
	if _, err := parseFormats([]string{"gif"}); err == nil {
		t.Error("Expected error for an unknown format")
	}
}

func TestWriteScripts(t *testing.T) {
	var buf bytes.Buffer
	if err := writeScripts(&buf); err != nil {
		t.Fatalf("writeScripts: %v", err)
	}
	var out struct {
		Scripts []scriptSummary `json:"scripts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	names := make(map[string]bool)
	for _, s := range out.Scripts {
		names[s.Name] = true
		if s.Steps == 0 {
			t.Errorf("script %s has no steps", s.Name)
		}
	}
	for _, want := range []string{"demo", "fill", "shrink", "orders"} {
		if !names[want] {
			t.Errorf("missing built-in %q", want)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("got %q", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestPrintRobotHelp(t *testing.T) {
	var buf bytes.Buffer
	printRobotHelp(&buf)
	for _, flag := range []string{"--values", "--random", "--robot-tree", "--robot-layout", "--robot-stats", "--robot-scripts", "--export-all"} {
		if !strings.Contains(buf.String(), flag) {
			t.Errorf("robot help does not mention %s", flag)
		}
	}
}
