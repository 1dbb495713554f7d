package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/khimera-dev/khimera/internal/component"
	"github.com/khimera-dev/khimera/internal/plugin"
	"github.com/khimera-dev/khimera/internal/spec"
)

func newTestRegistry(t *testing.T) *plugin.Registry {
	t.Helper()

	model := plugin.NewModel("host", "")
	require.NoError(t, model.Add(spec.NewMetadataField("author", reflect.TypeOf(""))))

	reg := plugin.NewRegistry(nil, nil)
	for _, name := range []string{"alpha", "beta"} {
		p := plugin.New(model, name, "")
		require.NoError(t, p.Add("author", component.NewMetadata("author", "x")))
		require.NoError(t, reg.Register(p))
	}
	return reg
}

func keyMsg(key string) tea.KeyMsg {
	if key == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestViewListsPlugins(t *testing.T) {
	m := NewModel(newTestRegistry(t))

	view := m.View()
	require.Contains(t, view, "Plugins")
	require.Contains(t, view, "alpha")
	require.Contains(t, view, "beta")
	require.Contains(t, view, "enabled")
}

func TestViewEmptyRegistry(t *testing.T) {
	m := NewModel(plugin.NewRegistry(nil, nil))

	require.Contains(t, m.View(), "no plugins registered")
}

func TestNavigationStaysInBounds(t *testing.T) {
	m := NewModel(newTestRegistry(t))

	updated, _ := m.Update(keyMsg("k"))
	m = updated.(Model)
	require.Equal(t, 0, m.cursor)

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	require.Equal(t, 1, m.cursor)

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	require.Equal(t, 1, m.cursor)
}

func TestToggleFlipsEnabledState(t *testing.T) {
	reg := newTestRegistry(t)
	m := NewModel(reg)

	updated, _ := m.Update(keyMsg(" "))
	m = updated.(Model)
	require.False(t, reg.IsEnabled("alpha"))
	require.True(t, reg.IsEnabled("beta"))

	updated, _ = m.Update(keyMsg(" "))
	m = updated.(Model)
	require.True(t, reg.IsEnabled("alpha"))
}

func TestQuit(t *testing.T) {
	m := NewModel(newTestRegistry(t))

	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	require.Empty(t, m.View())
}
