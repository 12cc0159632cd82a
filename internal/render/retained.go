package render

import "github.com/charmbracelet/log"

// NewRetained creates an empty retained scene store.
func NewRetained() *Retained {
	return &Retained{scenes: make(map[string]Scene)}
}

// Update stores scene as the latest for its category and returns the patch
// from the previously stored scene. The first update of a category upserts
// everything.
func (r *Retained) Update(scene Scene) Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.scenes[scene.CategoryID]
	r.scenes[scene.CategoryID] = scene
	p := Diff(prev, scene)
	log.Debug("Scene updated", "categoryID", scene.CategoryID, "upserted", len(p.Upserted), "removed", len(p.Removed), "connectors", len(p.ConnectorsUpserted))
	return p
}

// Snapshot returns the latest stored scene of a category.
func (r *Retained) Snapshot(categoryID string) (Scene, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scenes[categoryID]
	return s, ok
}
