package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keyreaper/keyreaper/internal/types"
)

func sampleResults() []types.DetectionResult {
	return []types.DetectionResult{
		{
			Kind:            types.KindSecretFound,
			DetectingModule: "flask_signed_cookie",
			Description:     types.ProductInfo{Product: "Flask session cookie", Secret: "Flask SECRET_KEY"},
			Location:        "Cookie: session",
			Secret:          "CHANGEME",
		},
		{
			Kind:            types.KindProductIdentified,
			DetectingModule: "aspnet_viewstate",
			Description:     types.ProductInfo{Product: "ASP.NET ViewState", Secret: "MachineKey validation key"},
			Location:        "Body",
		},
	}
}

func TestNewModelRows(t *testing.T) {
	m := NewModel("http://example.test", sampleResults())
	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
}

func TestViewBeforeReady(t *testing.T) {
	m := NewModel("http://example.test", sampleResults())
	if m.View() != "loading..." {
		t.Fatalf("unexpected initial view %q", m.View())
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel("http://example.test", sampleResults())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if !updated.(Model).quitting {
		t.Fatalf("expected quitting state")
	}
}

func TestCopyOnIdentifiedResult(t *testing.T) {
	m := NewModel("http://example.test", sampleResults())
	m.table.SetCursor(1)
	updated, _ := m.copySecret()
	if updated.(Model).statusMessage != "no secret on this result" {
		t.Fatalf("unexpected status %q", updated.(Model).statusMessage)
	}
}

func TestRenderDetail(t *testing.T) {
	out := renderDetail(sampleResults()[0])
	if out == "" {
		t.Fatalf("expected detail content")
	}
}
