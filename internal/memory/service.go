package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iammorganparry/memomap/internal/models"
	"github.com/iammorganparry/memomap/internal/store"
)

// ErrNoMemories is returned by Random when the collection is empty.
var ErrNoMemories = errors.New("no memories recorded yet")

// ValidationError reports a rejected request. State is guaranteed unchanged
// when one is returned.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Service is the main facade for all memory operations. It owns the
// collection, keeps the derived marker index in sync with it, and notifies
// the bound view of every change.
type Service struct {
	memories *store.MemoryStore
	validate *validator.Validate
	logger   *slog.Logger

	mu      sync.Mutex
	markers *markerIndex
	view    View
	lastID  int64
}

// NewService creates the service and rebuilds the marker index from the
// stored collection.
func NewService(memories *store.MemoryStore, logger *slog.Logger) (*Service, error) {
	s := &Service{
		memories: memories,
		validate: validator.New(),
		logger:   logger,
		markers:  newMarkerIndex(),
	}
	all, err := memories.ExportAll()
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}
	s.markers.rebuild(all)
	for _, m := range all {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	return s, nil
}

// BindView registers the rendering surface and replays the current collection
// onto it so its markers match the store.
func (s *Service) BindView(v View) error {
	all, err := s.memories.ExportAll()
	if err != nil {
		return fmt.Errorf("load memories: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	if v != nil {
		for _, m := range all {
			v.AddMarker(m)
		}
	}
	return nil
}

// Create validates the request, allocates an id, stamps createdAt, stores the
// memory, and places its marker. Nothing is persisted on validation failure.
func (s *Service) Create(req *models.MemoryRequest) (*models.Memory, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	mood := req.Mood
	if mood == "" {
		mood = models.DefaultMood
	}

	s.mu.Lock()
	id := s.nextIDLocked()
	s.mu.Unlock()

	m := &models.Memory{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Mood:        mood,
		Lat:         req.Lat,
		Lng:         req.Lng,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.memories.Insert(m); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.markers.put(m)
	v := s.view
	s.mu.Unlock()
	if v != nil {
		v.AddMarker(m)
	}

	s.logger.Info("memory created", "id", m.ID, "title", m.Title, "mood", string(m.Mood))
	return m, nil
}

// Update replaces every mutable field of the memory, preserving id and
// createdAt, and re-creates the marker since the location may have moved.
func (s *Service) Update(id int64, req *models.MemoryRequest) (*models.Memory, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.memories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("update memory %d: %w", id, store.ErrNotFound)
	}

	mood := req.Mood
	if mood == "" {
		mood = models.DefaultMood
	}

	m := &models.Memory{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Mood:        mood,
		Lat:         req.Lat,
		Lng:         req.Lng,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.memories.Update(m); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.markers.remove(id)
	s.markers.put(m)
	v := s.view
	s.mu.Unlock()
	if v != nil {
		v.RemoveMarker(id)
		v.AddMarker(m)
	}

	s.logger.Info("memory updated", "id", m.ID, "title", m.Title)
	return m, nil
}

// Delete removes the memory and its marker. The view layer is responsible
// for asking the user before calling.
func (s *Service) Delete(id int64) error {
	if err := s.memories.Delete(id); err != nil {
		return err
	}

	s.mu.Lock()
	s.markers.remove(id)
	v := s.view
	s.mu.Unlock()
	if v != nil {
		v.RemoveMarker(id)
	}

	s.logger.Info("memory deleted", "id", id)
	return nil
}

// Get fetches a single memory. Returns (nil, nil) when absent.
func (s *Service) Get(id int64) (*models.Memory, error) {
	return s.memories.GetByID(id)
}

// List returns the memories matching the filter and narrows marker
// visibility to exactly that subset. The collection itself is untouched.
func (s *Service) List(f models.Filter) ([]*models.Memory, error) {
	memories, err := s.memories.List(f)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if f.IsEmpty() {
		s.markers.clearFilter()
	} else {
		ids := make([]int64, len(memories))
		for i, m := range memories {
			ids[i] = m.ID
		}
		s.markers.setVisible(ids)
	}
	visible := visibleIDs(memories)
	v := s.view
	s.mu.Unlock()
	if v != nil {
		v.SetVisible(visible)
	}

	return memories, nil
}

// Random picks one memory uniformly at random and asks the view to focus its
// marker. Returns ErrNoMemories on an empty collection.
func (s *Service) Random() (*models.Memory, error) {
	m, err := s.memories.Random()
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNoMemories
	}

	s.mu.Lock()
	v := s.view
	s.mu.Unlock()
	if v != nil {
		v.FocusMarker(m.ID)
	}
	return m, nil
}

// Export returns the whole collection, oldest first.
func (s *Service) Export() ([]*models.Memory, error) {
	return s.memories.ExportAll()
}

// Import replaces the entire collection with the supplied records and
// rebuilds markers from scratch. Either every record lands or the prior
// collection is retained untouched.
func (s *Service) Import(records []*models.Memory) (int, error) {
	cleaned, err := s.sanitizeImport(records)
	if err != nil {
		return 0, err
	}

	if err := s.memories.ReplaceAll(cleaned); err != nil {
		return 0, err
	}

	s.mu.Lock()
	old := make([]int64, 0, len(s.markers.byID))
	for id := range s.markers.byID {
		old = append(old, id)
	}
	s.markers.rebuild(cleaned)
	for _, m := range cleaned {
		if m.ID > s.lastID {
			s.lastID = m.ID
		}
	}
	v := s.view
	s.mu.Unlock()
	if v != nil {
		for _, id := range old {
			v.RemoveMarker(id)
		}
		for _, m := range cleaned {
			v.AddMarker(m)
		}
	}

	s.logger.Info("memories imported", "count", len(cleaned))
	return len(cleaned), nil
}

// Markers returns the current marker index with visibility applied, sorted
// by id for stable output.
func (s *Service) Markers() []models.Marker {
	s.mu.Lock()
	markers := s.markers.snapshot()
	s.mu.Unlock()
	sort.Slice(markers, func(i, j int) bool { return markers[i].ID < markers[j].ID })
	return markers
}

// Count returns the collection size.
func (s *Service) Count() (int, error) {
	all, err := s.memories.ExportAll()
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// sanitizeImport validates every record and fills generated fields. Unknown
// moods fall back to the default since mood has a documented fallback; any
// other violation rejects the whole batch.
func (s *Service) sanitizeImport(records []*models.Memory) ([]*models.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	seen := make(map[int64]bool, len(records))
	cleaned := make([]*models.Memory, 0, len(records))
	for i, r := range records {
		if r == nil {
			return nil, &ValidationError{msg: fmt.Sprintf("record %d: not a memory object", i)}
		}
		m := *r
		if strings.TrimSpace(m.Title) == "" {
			return nil, &ValidationError{msg: fmt.Sprintf("record %d: title is required", i)}
		}
		if strings.TrimSpace(m.Description) == "" {
			return nil, &ValidationError{msg: fmt.Sprintf("record %d: description is required", i)}
		}
		if _, err := time.Parse("2006-01-02", m.Date); err != nil {
			return nil, &ValidationError{msg: fmt.Sprintf("record %d: date must be YYYY-MM-DD", i)}
		}
		if m.Lat < -90 || m.Lat > 90 || m.Lng < -180 || m.Lng > 180 {
			return nil, &ValidationError{msg: fmt.Sprintf("record %d: coordinates out of range", i)}
		}
		if !m.Mood.IsValid() {
			m.Mood = models.DefaultMood
		}
		if m.ID == 0 {
			m.ID = s.nextIDLocked()
		}
		if seen[m.ID] {
			return nil, &ValidationError{msg: fmt.Sprintf("record %d: duplicate id %d", i, m.ID)}
		}
		seen[m.ID] = true
		if m.CreatedAt == 0 {
			m.CreatedAt = now
		}
		cleaned = append(cleaned, &m)
	}
	return cleaned, nil
}

func (s *Service) validateRequest(req *models.MemoryRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return &ValidationError{msg: formatValidationError(err)}
	}
	return nil
}

// nextIDLocked allocates a unique id from the millisecond clock, bumped past
// the last issued value so burst creation stays unique. Caller holds mu.
func (s *Service) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func visibleIDs(memories []*models.Memory) []int64 {
	ids := make([]int64, len(memories))
	for i, m := range memories {
		ids[i] = m.ID
	}
	return ids
}

// formatValidationError turns validator tag failures into readable messages.
func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s is out of range", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
