package keyreaper

import (
	"testing"

	"github.com/keyreaper/keyreaper/internal/config"
)

func TestPickString(t *testing.T) {
	local := "from-local"
	global := "from-global"
	if got := pickString("cli", &local, &global); got != "cli" {
		t.Fatalf("cli should win, got %q", got)
	}
	if got := pickString("", &local, &global); got != "from-local" {
		t.Fatalf("local should win, got %q", got)
	}
	if got := pickString("", nil, &global); got != "from-global" {
		t.Fatalf("global should win, got %q", got)
	}
	if got := pickString("", nil, nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestPickBool(t *testing.T) {
	yes, no := true, false
	if !pickBool(true, &no, nil) {
		t.Fatalf("cli true should win")
	}
	if !pickBool(false, &yes, nil) {
		t.Fatalf("local should win when cli unset")
	}
	if pickBool(false, &no, &yes) {
		t.Fatalf("local false should shadow global true")
	}
	if pickBool(false, nil, nil) {
		t.Fatalf("expected false")
	}
}

func TestNoColorConfigPrecedence(t *testing.T) {
	yes, no := true, false

	var merged config.FileConfig
	mergeConfig(&merged, config.FileConfig{NoColor: &yes})
	if !pickBool(false, merged.NoColor, nil) {
		t.Fatalf("config no_color should apply when the flag is unset")
	}

	// Local shadows global, CLI flag beats both.
	merged = config.FileConfig{NoColor: &yes}
	mergeConfig(&merged, config.FileConfig{NoColor: &no})
	if pickBool(false, merged.NoColor, nil) {
		t.Fatalf("local no_color=false should shadow global true")
	}
	if !pickBool(true, merged.NoColor, nil) {
		t.Fatalf("cli flag should win over config")
	}
}
