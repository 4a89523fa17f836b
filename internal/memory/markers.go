package memory

import "github.com/iammorganparry/memomap/internal/models"

// View is the rendering surface contract. The service pushes marker changes
// through it so the store logic never touches a map library directly; a nil
// view is legal and every notification becomes a no-op.
type View interface {
	// AddMarker places a marker for the memory at its coordinate.
	AddMarker(m *models.Memory)
	// RemoveMarker drops the marker for the given memory id.
	RemoveMarker(id int64)
	// FocusMarker recenters the surface on the given memory's marker.
	FocusMarker(id int64)
	// SetVisible restricts marker visibility to exactly the given ids.
	SetVisible(ids []int64)
}

// markerIndex is the id→marker mapping derived from the memory collection.
// It is a cache, never authoritative: it is rebuilt wholesale from the store
// on startup and on import.
type markerIndex struct {
	byID    map[int64]models.Marker
	visible map[int64]bool // nil means no filter applied, everything visible
}

func newMarkerIndex() *markerIndex {
	return &markerIndex{byID: make(map[int64]models.Marker)}
}

func (idx *markerIndex) rebuild(memories []*models.Memory) {
	idx.byID = make(map[int64]models.Marker, len(memories))
	idx.visible = nil
	for _, m := range memories {
		idx.put(m)
	}
}

func (idx *markerIndex) put(m *models.Memory) {
	idx.byID[m.ID] = models.Marker{ID: m.ID, Lat: m.Lat, Lng: m.Lng, Mood: m.Mood}
}

func (idx *markerIndex) remove(id int64) {
	delete(idx.byID, id)
	delete(idx.visible, id)
}

func (idx *markerIndex) setVisible(ids []int64) {
	idx.visible = make(map[int64]bool, len(ids))
	for _, id := range ids {
		idx.visible[id] = true
	}
}

func (idx *markerIndex) clearFilter() {
	idx.visible = nil
}

// snapshot returns the markers with their current visibility, for the page
// to render after a reload.
func (idx *markerIndex) snapshot() []models.Marker {
	markers := make([]models.Marker, 0, len(idx.byID))
	for _, mk := range idx.byID {
		mk.Visible = idx.visible == nil || idx.visible[mk.ID]
		markers = append(markers, mk)
	}
	return markers
}
