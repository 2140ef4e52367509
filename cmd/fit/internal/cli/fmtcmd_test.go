package cli

import (
	"context"
	"os"
	"strings"
	"testing"
)

const messySceneYAML = `flow:
  width: 120
  anchor: top
  align: leading
items:
  - width: 50
    height: 20
`

func TestRunFmtRewrite(t *testing.T) {
	path := writeScene(t, "messy.yaml", messySceneYAML)

	if err := runFmt(context.Background(), []string{path}, &fmtOpts{}); err != nil {
		t.Fatalf("runFmt: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rewritten scene: %v", err)
	}
	if strings.Contains(string(data), "anchor") || strings.Contains(string(data), "align") {
		t.Errorf("rewrite kept default settings:\n%s", data)
	}

	// Canonical output passes a subsequent check.
	if err := runFmt(context.Background(), []string{path}, &fmtOpts{check: true}); err != nil {
		t.Errorf("canonical scene failed check: %v", err)
	}
}

func TestRunFmtCheck(t *testing.T) {
	path := writeScene(t, "messy.yaml", messySceneYAML)

	err := runFmt(context.Background(), []string{path}, &fmtOpts{check: true})
	if err == nil || !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("error = %v, want formatting failure", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scene: %v", err)
	}
	if string(data) != messySceneYAML {
		t.Error("check mode must not rewrite the scene")
	}
}

func TestRunFmtBadScene(t *testing.T) {
	path := writeScene(t, "broken.yaml", "items: [")

	if err := runFmt(context.Background(), []string{path}, &fmtOpts{}); err == nil {
		t.Error("expected error for unparseable scene")
	}
}
