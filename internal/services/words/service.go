package words

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/drawdash/drawdash/internal/dependencies/random"
	"github.com/drawdash/drawdash/internal/model"
)

// Service supplies one secret word per round
type Service struct {
	random random.Random
	logger *slog.Logger

	mu    sync.RWMutex
	words []string
}

// New creates a new word service with the built-in default list
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "words")),
		words:  defaultWords,
	}
}

// LoadFromFile replaces the word list with the contents of a file
// (one word per line, blank lines ignored)
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

	s.mu.Lock()
	s.words = words
	s.mu.Unlock()

	s.logger.Info("word list loaded",
		slog.String("path", path),
		slog.Int("count", len(words)),
	)
	return nil
}

// LoadWords directly replaces the word list (useful for testing)
func (s *Service) LoadWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = words
}

// RandomWord draws one word from the list
func (s *Service) RandomWord() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.words) == 0 {
		return "", model.ErrNoWordsLoaded
	}
	return s.words[s.random.Intn(len(s.words))], nil
}

// WordCount returns the number of loaded words
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
