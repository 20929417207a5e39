package game

import (
	"log/slog"
	"strings"
	"time"

	"github.com/drawdash/drawdash/internal/model"
)

// WordSource supplies one secret word per round
type WordSource interface {
	RandomWord() (string, error)
}

// SessionConfig holds per-session round settings
type SessionConfig struct {
	// RoundDuration is the round length in seconds
	RoundDuration int
	// TickInterval is the wall-clock period of the countdown timer
	TickInterval time.Duration
}

// DefaultSessionConfig returns the standard round settings
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		RoundDuration: 80,
		TickInterval:  time.Second,
	}
}

// Session owns one room's players and round state. It is a plain state
// machine with no locking of its own: all mutations for a room must be
// serialized by the caller (the orchestrator holds the room mutex).
//
// Invariants held between operations: the secret word is non-empty iff a
// round is active; correctGuessers only ever contains non-drawer player
// ids; player insertion order defines drawer rotation order.
type Session struct {
	roomID    string
	cfg       SessionConfig
	words     WordSource
	logger    *slog.Logger
	afterTick func(seq uint64)

	players         []model.Player
	currentDrawer   model.ConnID
	word            string
	timeLeft        int
	roundActive     bool
	correctGuessers map[model.ConnID]struct{}

	// roundSeq increments on every round start; timer ticks carry the
	// sequence they were armed with so stale ticks can be discarded
	roundSeq uint64
	timer    *RoundTimer
}

// NewSession creates a session for a room. afterTick is invoked from the
// round timer's goroutine once per tick interval while a round runs; the
// callback must route back through the room's serialization before
// touching the session.
func NewSession(roomID string, cfg SessionConfig, words WordSource, logger *slog.Logger, afterTick func(seq uint64)) *Session {
	return &Session{
		roomID:          roomID,
		cfg:             cfg,
		words:           words,
		logger:          logger.With(slog.String("component", "session"), slog.String("roomId", roomID)),
		afterTick:       afterTick,
		correctGuessers: make(map[model.ConnID]struct{}),
	}
}

// AddPlayer appends a player to the rotation order. The first player in
// an empty room becomes drawer, and a round is started if none is active.
// Duplicate connection ids are rejected upstream.
func (s *Session) AddPlayer(p model.Player) []model.Player {
	s.players = append(s.players, p)

	if len(s.players) == 1 {
		s.currentDrawer = p.ConnID
		if !s.roundActive {
			s.StartRound()
		}
	}

	return s.Players()
}

// RemovePlayer removes a player and any pending correct-guess record for
// them. If the drawer left, the round ends and, when players remain, the
// next drawer is selected and a new round started. No-op for unknown ids.
//
// When a non-drawer leaves mid-round the caller must re-check
// CheckAllGuessed: the departure can complete the quorum.
func (s *Session) RemovePlayer(connID model.ConnID) []model.Player {
	before := len(s.players)
	kept := s.players[:0]
	for _, p := range s.players {
		if p.ConnID != connID {
			kept = append(kept, p)
		}
	}
	s.players = kept
	delete(s.correctGuessers, connID)

	if len(s.players) == before {
		return s.Players()
	}

	if s.currentDrawer == connID {
		s.EndRound()
		if len(s.players) > 0 {
			s.SelectNextDrawer()
			s.StartRound()
		}
	}

	return s.Players()
}

// StartRound begins a new round: draws a fresh word, resets the clock,
// clears the correct-guess set, and arms the countdown timer. Returns
// false without state change if a round is already active, the room is
// empty, or no word can be drawn.
func (s *Session) StartRound() bool {
	if s.roundActive || len(s.players) == 0 {
		return false
	}

	// The recorded drawer may have left since the last round
	if !s.drawerExists() {
		if !s.SelectNextDrawer() {
			s.currentDrawer = s.players[0].ConnID
		}
	}

	word, err := s.words.RandomWord()
	if err != nil {
		s.logger.Error("failed to draw word", slog.String("error", err.Error()))
		return false
	}

	s.roundActive = true
	s.word = word
	s.timeLeft = s.cfg.RoundDuration
	clear(s.correctGuessers)
	s.roundSeq++

	s.logger.Info("round started",
		slog.String("drawer", string(s.currentDrawer)),
		slog.Uint64("round", s.roundSeq),
	)

	if s.timer != nil {
		s.timer.Stop()
	}
	seq := s.roundSeq
	s.timer = NewRoundTimer(s.cfg.TickInterval, func() {
		s.afterTick(seq)
	})

	return true
}

// EndRound cancels the timer and returns the session to idle. Idempotent.
func (s *Session) EndRound() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.roundActive = false
	s.word = ""
	s.timeLeft = 0
	clear(s.correctGuessers)
}

// SelectNextDrawer advances the drawer pointer to the next player in
// rotation order, wrapping around. Returns false with fewer than two
// players. Bounded by the player count so it terminates even if entries
// were ever skipped.
func (s *Session) SelectNextDrawer() bool {
	if len(s.players) <= 1 {
		return false
	}

	current := s.drawerIndex()
	next := (current + 1) % len(s.players)
	for i := 0; i < len(s.players); i++ {
		if s.players[next].ConnID != "" {
			break
		}
		next = (next + 1) % len(s.players)
	}

	s.currentDrawer = s.players[next].ConnID
	return true
}

// CheckGuess evaluates a guess against the secret word, case-insensitively.
// Returns false with no state change when no round is active, the guesser
// is the drawer, or no word is set. A correct guess records the guesser;
// repeating a correct guess is a no-op (still returns true).
func (s *Session) CheckGuess(connID model.ConnID, text string) bool {
	if !s.roundActive || connID == s.currentDrawer || s.word == "" {
		return false
	}

	if !strings.EqualFold(text, s.word) {
		return false
	}

	s.correctGuessers[connID] = struct{}{}
	return true
}

// CheckAllGuessed reports whether every non-drawer player has guessed
// correctly. Never true with zero non-drawer players: a lone player's
// round runs only to timeout. Pure query.
func (s *Session) CheckAllGuessed() bool {
	if !s.roundActive {
		return false
	}

	guessers := 0
	for _, p := range s.players {
		if p.ConnID != s.currentDrawer {
			guessers++
		}
	}
	return guessers > 0 && len(s.correctGuessers) == guessers
}

// AddScore credits points to a player; no-op if the player is absent
func (s *Session) AddScore(connID model.ConnID, points int) {
	for i := range s.players {
		if s.players[i].ConnID == connID {
			s.players[i].Score += points
			return
		}
	}
}

// RemainingGuessers returns the display names of non-drawer players who
// have not yet guessed correctly
func (s *Session) RemainingGuessers() []string {
	var names []string
	for _, p := range s.players {
		if p.ConnID == s.currentDrawer {
			continue
		}
		if _, guessed := s.correctGuessers[p.ConnID]; !guessed {
			names = append(names, p.Username)
		}
	}
	return names
}

// VisibleState returns the state snapshot as seen by one connection. The
// secret word is nulled out unless the viewer is the current drawer; this
// is the single enforcement point for word secrecy and every outward state
// read must go through it.
func (s *Session) VisibleState(forConnID model.ConnID) model.StateSnapshot {
	snapshot := model.StateSnapshot{
		Players:         s.Players(),
		CurrentDrawer:   s.currentDrawer,
		TimeLeft:        s.timeLeft,
		RoundDuration:   s.cfg.RoundDuration,
		RoundInProgress: s.roundActive,
		CorrectGuessers: make([]model.ConnID, 0, len(s.correctGuessers)),
	}

	for _, p := range s.players {
		if _, ok := s.correctGuessers[p.ConnID]; ok {
			snapshot.CorrectGuessers = append(snapshot.CorrectGuessers, p.ConnID)
		}
	}

	if s.roundActive && forConnID == s.currentDrawer {
		word := s.word
		snapshot.Word = &word
	}

	return snapshot
}

// Tick decrements the round clock by one interval and returns the time
// remaining. The caller drives the end-of-round transition at zero.
func (s *Session) Tick() int {
	if !s.roundActive {
		return s.timeLeft
	}
	s.timeLeft--
	return s.timeLeft
}

// Players returns a copy of the player list in rotation order
func (s *Session) Players() []model.Player {
	players := make([]model.Player, len(s.players))
	copy(players, s.players)
	return players
}

// PlayerName returns the display name for a connection
func (s *Session) PlayerName(connID model.ConnID) (string, bool) {
	for _, p := range s.players {
		if p.ConnID == connID {
			return p.Username, true
		}
	}
	return "", false
}

// PlayerCount returns the number of players in the room
func (s *Session) PlayerCount() int {
	return len(s.players)
}

// CurrentDrawer returns the connection id of the current drawer
func (s *Session) CurrentDrawer() model.ConnID {
	return s.currentDrawer
}

// Word returns the current secret word, empty outside an active round.
// For orchestrator use only; anything client-facing goes through
// VisibleState.
func (s *Session) Word() string {
	return s.word
}

// RoundActive reports whether a round is in progress
func (s *Session) RoundActive() bool {
	return s.roundActive
}

// TimeLeft returns the seconds remaining in the current round
func (s *Session) TimeLeft() int {
	return s.timeLeft
}

// ElapsedInRound returns how long the current round has been running
func (s *Session) ElapsedInRound() time.Duration {
	if !s.roundActive {
		return 0
	}
	return time.Duration(s.cfg.RoundDuration-s.timeLeft) * time.Second
}

// RoundSeq returns the sequence number of the current (or last) round
func (s *Session) RoundSeq() uint64 {
	return s.roundSeq
}

func (s *Session) drawerExists() bool {
	for _, p := range s.players {
		if p.ConnID == s.currentDrawer {
			return true
		}
	}
	return false
}

func (s *Session) drawerIndex() int {
	for i, p := range s.players {
		if p.ConnID == s.currentDrawer {
			return i
		}
	}
	return -1
}
