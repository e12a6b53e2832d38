package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeRunes(g *GoToInput, s string) {
	for _, r := range s {
		g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewGoToInput_StartsClosed(t *testing.T) {
	g := NewGoToInput(nil)

	require.NotNil(t, g)
	assert.False(t, g.Focused())
	assert.Equal(t, "", g.Value())
}

func TestGoToInput_OpenFocuses(t *testing.T) {
	g := NewGoToInput(nil)

	g.Open()

	assert.True(t, g.Focused())
	assert.Contains(t, g.View(), "Go to")
}

func TestGoToInput_Number(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"valid", "12", 12, true},
		{"zero", "0", 0, false},
		{"letters", "ab", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGoToInput(nil)
			g.Open()
			typeRunes(g, tt.input)

			n, ok := g.Number()

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestGoToInput_CloseClears(t *testing.T) {
	g := NewGoToInput(nil)
	g.Open()
	typeRunes(g, "3")

	g.Close()

	assert.False(t, g.Focused())
	assert.Equal(t, "", g.Value())
}
