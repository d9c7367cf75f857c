package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleHistory = `{
	"originalTopic": "Sound",
	"turns": [
		{"round": 1, "topic": "Sound", "response": "Echo", "player": "human",
		 "scores": {"semanticDistance": 3, "similarity": 8, "total": 11}},
		{"round": 2, "topic": "Echo", "response": "Resonance", "player": "ai",
		 "scores": {"semanticDistance": 5, "similarity": 6, "total": 11}}
	]
}`

func writeSampleHistory(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(sampleHistory), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutCommandSVG(t *testing.T) {
	historyPath := writeSampleHistory(t)
	outPath := filepath.Join(t.TempDir(), "out.svg")

	configPath := ""
	cmd := newLayoutCmd(&configPath)
	cmd.SetArgs([]string{historyPath, "-o", outPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("layout command failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("output is not an SVG document")
	}
	if strings.Count(svg, "<circle") != 3 {
		t.Errorf("expected 3 nodes in the output, got %d", strings.Count(svg, "<circle"))
	}
}

func TestLayoutCommandJSONToStdout(t *testing.T) {
	historyPath := writeSampleHistory(t)

	configPath := ""
	cmd := newLayoutCmd(&configPath)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{historyPath, "-f", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("layout command failed: %v", err)
	}

	var frame struct {
		Nodes []json.RawMessage `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(out.Bytes(), &frame); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(frame.Nodes) != 3 || len(frame.Links) != 2 {
		t.Errorf("got %d nodes / %d links, want 3 / 2", len(frame.Nodes), len(frame.Links))
	}
}

func TestLayoutCommandBadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"turns": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	configPath := ""
	cmd := newLayoutCmd(&configPath)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for history without an original topic")
	}
}
