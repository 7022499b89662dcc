package moderation

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DiffEntry is one changed field between an edit request's old and new value
// snapshots.
type DiffEntry struct {
	Key string
	Old string
	New string
}

// Diff returns the keys present in either map whose serialized values differ,
// sorted by key. Unchanged keys are excluded.
func Diff(oldValues, newValues map[string]any) []DiffEntry {
	keys := make(map[string]struct{}, len(oldValues)+len(newValues))
	for k := range oldValues {
		keys[k] = struct{}{}
	}
	for k := range newValues {
		keys[k] = struct{}{}
	}

	entries := make([]DiffEntry, 0, len(keys))
	for k := range keys {
		oldSer := serializeValue(oldValues[k])
		newSer := serializeValue(newValues[k])
		if oldSer == newSer {
			continue
		}
		entries = append(entries, DiffEntry{Key: k, Old: oldSer, New: newSer})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// DiffRows caps the rendered diff. The second return is the number of changed
// rows beyond the cap ("+N more").
func DiffRows(oldValues, newValues map[string]any, cap int) ([]DiffEntry, int) {
	entries := Diff(oldValues, newValues)
	if cap <= 0 || len(entries) <= cap {
		return entries, 0
	}
	return entries[:cap], len(entries) - cap
}

func serializeValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
