package service

import (
	"sync"

	"scrapedesk/internal/core/domain"
)

// NoSelection is the selected index when no category is chosen.
const NoSelection = -1

// ClientState is the in-memory state of one session. It is written only by
// the success paths of a catalog load and a scrape submission.
type ClientState struct {
	mu         sync.RWMutex
	categories []domain.Category
	selected   int
	videos     []domain.Video
	topicMeta  *domain.TopicMeta
	generation uint64
}

// NewClientState creates an empty session state.
func NewClientState() *ClientState {
	return &ClientState{selected: NoSelection}
}

// Categories returns the current catalog in display order.
func (s *ClientState) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

// Selected returns the selected catalog index, or NoSelection.
func (s *ClientState) Selected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// replaceCategories swaps in a freshly loaded catalog. The previous selection
// is dropped and the first entry becomes the default choice.
func (s *ClientState) replaceCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = categories
	s.selected = NoSelection
	if len(categories) > 0 {
		s.selected = 0
	}
}

// Select chooses the catalog entry at index.
func (s *ClientState) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.categories) == 0 {
		return &domain.SelectionError{Message: "load and select a category first"}
	}
	if index < 0 || index >= len(s.categories) {
		return &domain.SelectionError{Message: "no such category"}
	}
	s.selected = index
	return nil
}

// Videos returns the last received video list.
func (s *ClientState) Videos() []domain.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Video, len(s.videos))
	copy(out, s.videos)
	return out
}

// Video returns the video at position index of the last result set.
func (s *ClientState) Video(index int) (domain.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.videos) {
		return domain.Video{}, false
	}
	return s.videos[index], true
}

// TopicMeta returns the topic metadata of the last result set.
func (s *ClientState) TopicMeta() *domain.TopicMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topicMeta
}

// nextGeneration issues the token of a new submission.
func (s *ClientState) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// applyResult stores videos and meta together, but only when generation is
// the most recently issued token. It reports whether the result was applied.
func (s *ClientState) applyResult(generation uint64, videos []domain.Video, meta *domain.TopicMeta) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	if videos == nil {
		videos = []domain.Video{}
	}
	s.videos = videos
	s.topicMeta = meta
	return true
}
