package moderation

import (
	"fmt"
	"testing"
)

func TestDiffChangedKeySet(t *testing.T) {
	oldValues := map[string]any{"a": 1, "b": 2}
	newValues := map[string]any{"a": 1, "b": 3, "c": 4}

	entries := Diff(oldValues, newValues)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].Key != "b" || entries[1].Key != "c" {
		t.Fatalf("changed keys = [%s %s], want [b c]", entries[0].Key, entries[1].Key)
	}
	if entries[0].Old != "2" || entries[0].New != "3" {
		t.Fatalf("b entry = %+v", entries[0])
	}
	if entries[1].Old != "" || entries[1].New != "4" {
		t.Fatalf("c entry = %+v", entries[1])
	}
}

func TestDiffIgnoresEquivalentValues(t *testing.T) {
	tests := []struct {
		name      string
		oldValues map[string]any
		newValues map[string]any
		want      int
	}{
		{"identical maps", map[string]any{"x": "y"}, map[string]any{"x": "y"}, 0},
		{"both empty", map[string]any{}, map[string]any{}, 0},
		{"nil vs missing", map[string]any{"x": nil}, map[string]any{}, 0},
		{"slice values", map[string]any{"tags": []any{"a"}}, map[string]any{"tags": []any{"a", "b"}}, 1},
		{"nested maps", map[string]any{"cf": map[string]any{"k": 1}}, map[string]any{"cf": map[string]any{"k": 2}}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(Diff(tc.oldValues, tc.newValues)); got != tc.want {
				t.Fatalf("got %d changed keys, want %d", got, tc.want)
			}
		})
	}
}

func TestDiffRowsCap(t *testing.T) {
	oldValues := map[string]any{}
	newValues := map[string]any{}
	for i := 0; i < 15; i++ {
		newValues[fmt.Sprintf("field_%02d", i)] = i
	}

	rows, more := DiffRows(oldValues, newValues, 12)
	if len(rows) != 12 {
		t.Fatalf("got %d rows, want 12", len(rows))
	}
	if more != 3 {
		t.Fatalf("more = %d, want 3", more)
	}

	rows, more = DiffRows(oldValues, newValues, 0)
	if len(rows) != 15 || more != 0 {
		t.Fatalf("uncapped: rows=%d more=%d", len(rows), more)
	}
}
