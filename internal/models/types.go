package models

// Mood classifies the emotional tone of a memory.
type Mood string

const (
	MoodHappy    Mood = "😊"
	MoodLoved    Mood = "😍"
	MoodSad      Mood = "😢"
	MoodCool     Mood = "😎"
	MoodExcited  Mood = "🤩"
	MoodPeaceful Mood = "🌙"
)

// DefaultMood is the fallback when a request carries no mood.
const DefaultMood = MoodHappy

var ValidMoods = map[Mood]bool{
	MoodHappy:    true,
	MoodLoved:    true,
	MoodSad:      true,
	MoodCool:     true,
	MoodExcited:  true,
	MoodPeaceful: true,
}

func (m Mood) IsValid() bool {
	return ValidMoods[m]
}

// MemoryRequest is the payload for POST /api/memories and PUT /api/memories/{id}.
// The same shape serves create and edit since edit replaces every mutable field.
type MemoryRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Mood        Mood    `json:"mood" validate:"omitempty,oneof=😊 😍 😢 😎 🤩 🌙"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Filter is a conjunctive predicate over the collection. Zero-valued fields
// are treated as always-true.
type Filter struct {
	Mood Mood   `json:"mood,omitempty"`
	From string `json:"from,omitempty"` // date >= From
	To   string `json:"to,omitempty"`   // date <= To
}

// IsEmpty reports whether the filter matches everything.
func (f Filter) IsEmpty() bool {
	return f.Mood == "" && f.From == "" && f.To == ""
}

// Marker is the view-side representation of a memory on the map surface.
type Marker struct {
	ID      int64   `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Mood    Mood    `json:"mood"`
	Visible bool    `json:"visible"`
}

// ListResponse is returned from GET /api/memories.
type ListResponse struct {
	Memories []*Memory `json:"memories"`
	Total    int       `json:"total"`
}

// ImportResult is returned from POST /api/memories/import.
type ImportResult struct {
	Imported int `json:"imported"`
}

// AppState is returned from GET /api/app-state.
type AppState struct {
	WelcomeShown bool    `json:"welcomeShown"`
	MemoryCount  int     `json:"memoryCount"`
	CenterLat    float64 `json:"centerLat"`
	CenterLng    float64 `json:"centerLng"`
	Zoom         int     `json:"zoom"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	DB          string `json:"db"`
	MemoryCount int    `json:"memoryCount"`
}
