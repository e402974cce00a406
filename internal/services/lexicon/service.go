package lexicon

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/wordtide/wordtide-go/internal/model"
)

// Oracle answers whether a candidate word is a legal dictionary word.
// It is a pure lookup: no state changes between calls once loaded.
type Oracle interface {
	IsValid(word string) bool
}

// Service is the default Oracle backed by an in-memory word set
type Service struct {
	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new lexicon service with no words loaded
func New() *Service {
	return &Service{
		words: make(map[string]struct{}),
	}
}

// Ensure Service implements Oracle
var _ Oracle = (*Service)(nil)

// LoadFromFile loads words from a file, one word per line
func (s *Service) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return s.LoadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		// Store lowercase for case-insensitive matching
		s.words[strings.ToLower(word)] = struct{}{}
	}
	s.loaded = true
	return nil
}

// IsValid checks whether a word exists in the lexicon
func (s *Service) IsValid(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// IsLoaded returns whether any word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of loaded words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// ErrLexiconNotLoaded is returned when validation is attempted before loading
var ErrLexiconNotLoaded = model.ErrLexiconNotLoaded
