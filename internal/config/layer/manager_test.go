package layer

import (
	"reflect"
	"testing"
)

func TestManager_AddLayer(t *testing.T) {
	m := NewManager()

	m.AddLayer(NewLayerWithData("flags", SourceArgs, PriorityArgs, nil))
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, nil))
	m.AddLayer(NewLayerWithData("env", SourceEnv, PriorityEnv, nil))

	if m.LayerCount() != 3 {
		t.Errorf("LayerCount() = %d, want 3", m.LayerCount())
	}

	layers := m.Layers()
	want := []string{"defaults", "env", "flags"}
	for i, name := range want {
		if layers[i].Name != name {
			t.Errorf("layer %d = %q, want %q", i, layers[i].Name, name)
		}
	}
}

func TestManager_AddLayerReplacesByName(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("file", SourceFile, PriorityFile, map[string]any{"caret": "a"}))
	m.AddLayer(NewLayerWithData("file", SourceFile, PriorityFile, map[string]any{"caret": "b"}))

	if m.LayerCount() != 1 {
		t.Fatalf("LayerCount() = %d, want 1", m.LayerCount())
	}
	if got := m.GetLayer("file").Data["caret"]; got != "b" {
		t.Errorf("caret = %v, want b", got)
	}
}

func TestManager_RemoveLayer(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, nil))
	m.AddLayer(NewLayerWithData("file", SourceFile, PriorityFile, nil))

	if !m.RemoveLayer("defaults") {
		t.Error("RemoveLayer should return true for existing layer")
	}
	if m.LayerCount() != 1 {
		t.Errorf("LayerCount() = %d, want 1", m.LayerCount())
	}
	if m.RemoveLayer("nonexistent") {
		t.Error("RemoveLayer should return false for non-existing layer")
	}
	if m.GetLayer("defaults") != nil {
		t.Error("removed layer is still returned")
	}
}

func TestManager_Merge(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, map[string]any{
		"normalizeEol": true,
		"caret":        "^",
		"anchor":       map[string]any{"start": "[", "end": "]"},
	}))
	m.AddLayer(NewLayerWithData("file", SourceFile, PriorityFile, map[string]any{
		"anchor": map[string]any{"start": "<", "end": ">"},
	}))
	m.AddLayer(NewLayerWithData("env", SourceEnv, PriorityEnv, map[string]any{
		"normalizeEol": false,
	}))

	want := map[string]any{
		"normalizeEol": false,
		"caret":        "^",
		"anchor":       map[string]any{"start": "<", "end": ">"},
	}
	merged := m.Merge()
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("Merge() = %v, want %v", merged, want)
	}

	merged["caret"] = "changed"
	if m.Merge()["caret"] != "^" {
		t.Error("Merge result aliases layer data")
	}
}

func TestManager_Get(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, map[string]any{"caret": "^"}))
	m.AddLayer(NewLayerWithData("flags", SourceArgs, PriorityArgs, map[string]any{"caret": "|"}))

	val, from, ok := m.Get("caret")
	if !ok || val != "|" || from.Name != "flags" {
		t.Errorf("Get(caret) = %v, %v, %v", val, from, ok)
	}
	if _, _, ok := m.Get("missing"); ok {
		t.Error("Get should report a missing path")
	}
}
