package layer

import (
	"sort"
	"sync"
)

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // Sorted by priority (ascending)
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddLayer adds a layer to the manager, replacing any layer with the same
// name. Layers are kept sorted by priority.
func (m *Manager) AddLayer(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(layer.Name)
	m.layers = append(m.layers, layer)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}

// RemoveLayer removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(name)
}

func (m *Manager) removeLocked(name string) bool {
	for i, layer := range m.layers {
		if layer.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return true
		}
	}
	return false
}

// GetLayer returns a layer by name.
func (m *Manager) GetLayer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, layer := range m.layers {
		if layer.Name == name {
			return layer
		}
	}
	return nil
}

// Layers returns a copy of all layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// LayerCount returns the number of layers.
func (m *Manager) LayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Merge combines all layers into a single map, lowest priority first.
// The result is a copy and may be modified freely.
func (m *Manager) Merge() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]any)
	for _, layer := range m.layers {
		result = ShallowMerge(result, layer.Data)
	}
	return result
}

// Get returns the effective value for a setting path.
// Returns the value, the layer it came from, and whether it was found.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		layer := m.layers[i]
		if val, ok := GetByPath(layer.Data, path); ok {
			return val, layer, true
		}
	}
	return nil, nil, false
}
