package actiontable

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sustainlog/internal/models"
)

func sample() []models.Action {
	return []models.Action{
		{ID: 1, Action: "Compost", Date: "2024-02-02", Points: 5},
		{ID: 2, Action: "Ride bike", Date: "2024-02-03", Points: 15},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewRendersRows(t *testing.T) {
	m := New(sample(), 80, 10)
	view := m.View()

	for _, want := range []string{"ID", "Action", "Date", "Points", "Compost", "2024-02-02", "Ride bike", "15"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := New(nil, 80, 10)
	if view := m.View(); !strings.Contains(view, "No actions yet.") {
		t.Errorf("View() = %q, want empty state", view)
	}

	m.SetLoading(true)
	if view := m.View(); strings.Contains(view, "No actions yet.") {
		t.Errorf("View() while loading = %q, want no empty state", view)
	}
}

func TestKeyMessages(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{name: "add", key: runes("a"), want: AddActionMsg{}},
		{name: "refresh", key: runes("r"), want: RefreshActionsMsg{}},
		{name: "edit", key: runes("e"), want: EditActionMsg{Action: sample()[0]}},
		{name: "enter edits", key: tea.KeyMsg{Type: tea.KeyEnter}, want: EditActionMsg{Action: sample()[0]}},
		{name: "delete", key: runes("d"), want: DeleteActionMsg{ID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(sample(), 80, 10)
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("Update() returned nil cmd")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("cmd() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestKeysOnEmptyTable(t *testing.T) {
	m := New(nil, 80, 10)
	for _, k := range []string{"e", "d"} {
		if _, cmd := m.Update(runes(k)); cmd != nil {
			t.Errorf("Update(%q) on empty table returned a cmd", k)
		}
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty table reported a row")
	}
}

func TestCursorMovesSelection(t *testing.T) {
	m := New(sample(), 80, 10)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	a, ok := m.Selected()
	if !ok || a.ID != 2 {
		t.Fatalf("Selected() = %+v, %v; want id 2", a, ok)
	}

	m.SetActions(sample()[:1])
	a, ok = m.Selected()
	if !ok || a.ID != 1 {
		t.Errorf("Selected() after shrink = %+v, %v; want id 1", a, ok)
	}
}

func TestRowsLoadedIntoEmptyTable(t *testing.T) {
	m := New(nil, 0, 0)
	m.SetActions(sample())

	a, ok := m.Selected()
	if !ok || a.ID != 1 {
		t.Fatalf("Selected() = %+v, %v; want id 1", a, ok)
	}

	_, cmd := m.Update(runes("d"))
	if cmd == nil {
		t.Fatal("Update(d) returned nil cmd")
	}
	if got, want := cmd(), (DeleteActionMsg{ID: 1}); got != want {
		t.Errorf("cmd() = %#v, want %#v", got, want)
	}

	_, cmd = m.Update(runes("e"))
	if cmd == nil {
		t.Fatal("Update(e) returned nil cmd")
	}
	if got, want := cmd(), (EditActionMsg{Action: sample()[0]}); got != want {
		t.Errorf("cmd() = %#v, want %#v", got, want)
	}
}

func TestEmptyThenRowsThenEmpty(t *testing.T) {
	m := New(sample(), 80, 10)
	m.SetActions(nil)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on emptied table reported a row")
	}

	m.SetActions(sample()[1:])
	a, ok := m.Selected()
	if !ok || a.ID != 2 {
		t.Errorf("Selected() after reload = %+v, %v; want id 2", a, ok)
	}
}

func TestColumnsKeepMinimumActionWidth(t *testing.T) {
	cols := columns(0)
	if cols[1].Width != minAction {
		t.Errorf("Action column width = %d, want %d", cols[1].Width, minAction)
	}
	if cols := columns(120); cols[1].Width != 120-idWidth-dateWidth-pointsWidth-8 {
		t.Errorf("Action column width = %d, want remaining width", cols[1].Width)
	}
}
