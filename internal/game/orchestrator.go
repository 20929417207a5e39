package game

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/drawdash/drawdash/internal/model"
	"github.com/drawdash/drawdash/internal/transport"
)

// Stats is the persistence collaborator. All methods are best-effort from
// the orchestrator's perspective; the implementation logs its own failures.
type Stats interface {
	EnsureUser(username string) *model.User
	RoundStarted(roomID, drawer, word string)
	CorrectGuess(roomID, word, guesser string, points int, timeToGuess time.Duration)
	GameFinished(roomID string)
}

// Config holds the orchestrator's round constants
type Config struct {
	Session        SessionConfig
	PointsPerGuess int
	// NextRoundDelay is the grace interval between a quorum-completed
	// round ending and the next round starting
	NextRoundDelay time.Duration
}

// DefaultConfig returns the standard game constants
func DefaultConfig() Config {
	return Config{
		Session:        DefaultSessionConfig(),
		PointsPerGuess: 100,
		NextRoundDelay: 5 * time.Second,
	}
}

// connInfo tracks which room and identity a connection belongs to
type connInfo struct {
	username string
	roomID   string
	userID   string
}

// Orchestrator maps inbound connection events to session operations and
// computes the visibility-filtered broadcasts that follow. It is the only
// component that knows about the transport.
//
// Every session mutation happens under the owning room's lock; broadcast
// payloads are captured inside the critical section and delivered after
// it, so recipients always see a consistent snapshot.
type Orchestrator struct {
	cfg       Config
	logger    *slog.Logger
	registry  *Registry
	words     WordSource
	broadcast transport.Broadcaster
	stats     Stats

	mu    sync.Mutex
	conns map[model.ConnID]connInfo

	// afterFunc schedules the grace delay before drawer rotation
	afterFunc func(d time.Duration, f func())
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(cfg Config, registry *Registry, words WordSource, broadcaster transport.Broadcaster, stats Stats, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "orchestrator")),
		registry:  registry,
		words:     words,
		broadcast: broadcaster,
		stats:     stats,
		conns:     make(map[model.ConnID]connInfo),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// HandleJoin adds a connection to a room, creating the room's session on
// first reference
func (o *Orchestrator) HandleJoin(connID model.ConnID, roomID, username string) {
	// A connection is in at most one room; repeat joins are no-ops
	o.mu.Lock()
	if _, joined := o.conns[connID]; joined {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()

	var userID string
	if user := o.stats.EnsureUser(username); user != nil {
		userID = user.ID
	}

	o.mu.Lock()
	o.conns[connID] = connInfo{username: username, roomID: roomID, userID: userID}
	o.mu.Unlock()

	o.broadcast.JoinRoom(connID, roomID)

	room := o.lockRoom(roomID)

	var sends []func()

	s := room.Session
	seqBefore := s.RoundSeq()
	players := s.AddPlayer(model.Player{ConnID: connID, Username: username, UserID: userID})

	sends = append(sends, func() {
		o.broadcast.ToRoom(roomID, model.EventPlayerJoined, model.PlayerJoinedPayload{
			Players: players,
			Message: username + " joined the room",
		})
	})

	// A room idle after a failed start (empty word list, lone-player edge)
	// gets another chance once a second player arrives
	if !s.RoundActive() && s.PlayerCount() >= 2 {
		s.StartRound()
	}

	joinerState := s.VisibleState(connID)
	sends = append(sends, func() {
		o.broadcast.ToConn(connID, model.EventGameState, joinerState)
	})

	if s.RoundActive() && s.RoundSeq() != seqBefore {
		sends = append(sends, o.announceRoundStart(s, roomID, "", false)...)
	} else if !s.RoundActive() && s.PlayerCount() == 1 {
		sends = append(sends, func() {
			o.broadcast.ToConn(connID, model.EventError, model.ErrorPayload{Message: "Failed to start round"})
		})
	}
	room.Unlock()

	for _, send := range sends {
		send()
	}
}

// lockRoom returns the registered room for an id with its lock held,
// creating the room when absent. A room can be removed from the registry
// between the lookup and the lock acquisition when its last member
// disconnects, so the lookup repeats until the locked room is still the
// registered one. Holding the returned lock blocks any removal.
func (o *Orchestrator) lockRoom(roomID string) *Room {
	for {
		room, created := o.registry.GetOrCreate(roomID, func() *Session {
			return o.newSession(roomID)
		})
		if created {
			o.logger.Info("room created", slog.String("roomId", roomID))
		}
		room.Lock()
		if current, ok := o.registry.Get(roomID); ok && current == room {
			return room
		}
		room.Unlock()
	}
}

// HandleGuess evaluates a guess from a connection. Correct guesses score
// points and may complete the quorum; incorrect ones are forwarded to the
// rest of the room as chat.
func (o *Orchestrator) HandleGuess(connID model.ConnID, guess string) {
	info, ok := o.connInfo(connID)
	if !ok {
		return
	}
	room, ok := o.registry.Get(info.roomID)
	if !ok {
		return
	}

	var sends []func()
	var afterCommit []func()

	room.Lock()
	s := room.Session
	if s.CheckGuess(connID, guess) {
		s.AddScore(connID, o.cfg.PointsPerGuess)

		word := s.Word()
		elapsed := s.ElapsedInRound()
		scores := s.Players()

		afterCommit = append(afterCommit, func() {
			o.stats.CorrectGuess(info.roomID, word, info.username, o.cfg.PointsPerGuess, elapsed)
		})
		sends = append(sends, func() {
			o.broadcast.ToRoom(info.roomID, model.EventCorrectGuess, model.CorrectGuessPayload{
				Username: info.username,
				Scores:   scores,
			})
		})

		if s.CheckAllGuessed() {
			sends = append(sends, o.finishRound(s, info.roomID, word)...)
		} else if remaining := s.RemainingGuessers(); len(remaining) > 0 {
			msg := fmt.Sprintf("%s guessed correctly! Waiting for %d more player(s).", info.username, len(remaining))
			sends = append(sends, func() {
				o.broadcast.ToRoom(info.roomID, model.EventSystemMessage, model.SystemMessagePayload{Message: msg})
			})
		}
	} else {
		if hint, nearly := o.closeGuessHint(s, connID, guess); nearly {
			sends = append(sends, func() {
				o.broadcast.ToConn(connID, model.EventSystemMessage, model.SystemMessagePayload{Message: hint})
			})
		}
		sends = append(sends, func() {
			o.broadcast.ToRoomExcept(info.roomID, connID, model.EventNewGuess, model.NewGuessPayload{
				Username: info.username,
				Guess:    guess,
			})
		})
	}
	room.Unlock()

	for _, send := range sends {
		send()
	}
	for _, f := range afterCommit {
		f()
	}
}

// HandleDisconnect removes a connection's player from its room, destroying
// the room when it empties
func (o *Orchestrator) HandleDisconnect(connID model.ConnID) {
	o.mu.Lock()
	info, ok := o.conns[connID]
	delete(o.conns, connID)
	o.mu.Unlock()
	if !ok {
		return
	}

	room, ok := o.registry.Get(info.roomID)
	if !ok {
		return
	}

	var sends []func()
	gameOver := false

	room.Lock()
	s := room.Session
	wasDrawer := s.CurrentDrawer() == connID
	seqBefore := s.RoundSeq()
	players := s.RemovePlayer(connID)

	if len(players) == 0 {
		s.EndRound()
		o.registry.Remove(info.roomID)
		gameOver = true
	} else {
		sends = append(sends, func() {
			o.broadcast.ToRoom(info.roomID, model.EventPlayerLeft, model.PlayerLeftPayload{
				Players: players,
				Message: info.username + " left the room",
			})
		})

		switch {
		case wasDrawer:
			// RemovePlayer already rotated the drawer and started the
			// next round
			if s.RoundActive() && s.RoundSeq() != seqBefore {
				sends = append(sends, o.announceRoundStart(s, info.roomID, "", false)...)
			}
		case s.CheckAllGuessed():
			// The departure completed the quorum
			sends = append(sends, o.finishRound(s, info.roomID, s.Word())...)
		case s.RoundActive():
			state := s.VisibleState("")
			sends = append(sends, func() {
				o.broadcast.ToRoom(info.roomID, model.EventGameState, state)
			})
		}
	}
	room.Unlock()

	for _, send := range sends {
		send()
	}
	if gameOver {
		o.logger.Info("room destroyed", slog.String("roomId", info.roomID))
		o.stats.GameFinished(info.roomID)
	}
}

// HandleDraw forwards an opaque drawing payload to the rest of the room.
// Only the current drawer's strokes are forwarded, except canvas clears
// which any player may trigger.
func (o *Orchestrator) HandleDraw(connID model.ConnID, data json.RawMessage) {
	info, ok := o.connInfo(connID)
	if !ok {
		return
	}
	room, ok := o.registry.Get(info.roomID)
	if !ok {
		return
	}

	room.Lock()
	isDrawer := room.Session.CurrentDrawer() == connID
	room.Unlock()

	var stroke struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(data, &stroke)

	if isDrawer || stroke.Type == "clear" {
		o.broadcast.ToRoomExcept(info.roomID, connID, model.EventDrawing, data)
	}
}

// handleTick runs one countdown step for a room. Ticks from a cancelled
// timer carry a stale round sequence and are discarded; whichever of a
// departure or a tick commits first wins the race to end the round.
func (o *Orchestrator) handleTick(roomID string, seq uint64) {
	room, ok := o.registry.Get(roomID)
	if !ok {
		return
	}

	var sends []func()

	room.Lock()
	s := room.Session
	if !s.RoundActive() || s.RoundSeq() != seq {
		room.Unlock()
		return
	}

	if s.Tick() <= 0 {
		word := s.Word()
		scores := s.Players()
		s.EndRound()

		sends = append(sends, func() {
			o.broadcast.ToRoom(roomID, model.EventSystemMessage, model.SystemMessagePayload{
				Message: fmt.Sprintf("Time's up! The word was %s.", word),
			})
		}, func() {
			o.broadcast.ToRoom(roomID, model.EventRoundEnd, model.RoundEndPayload{Word: word, Scores: scores})
		})

		// Rotation chains synchronously within the tick so no other
		// event can observe the half-finished transition
		s.SelectNextDrawer()
		if s.StartRound() {
			sends = append(sends, o.announceRoundStart(s, roomID, word, true)...)
		}
	}
	room.Unlock()

	for _, send := range sends {
		send()
	}
}

// rotateAndStart runs after the grace delay following a quorum-completed
// round. The room may have been destroyed or the round restarted by
// another path in the meantime; both make this a no-op.
func (o *Orchestrator) rotateAndStart(roomID, previousWord string) {
	room, ok := o.registry.Get(roomID)
	if !ok {
		return
	}

	var sends []func()

	room.Lock()
	s := room.Session
	if !s.RoundActive() && s.PlayerCount() > 0 {
		s.SelectNextDrawer()
		if s.StartRound() {
			sends = o.announceRoundStart(s, roomID, previousWord, true)
		}
	}
	room.Unlock()

	for _, send := range sends {
		send()
	}
}

// finishRound ends a quorum-completed round and schedules the grace
// rotation. Caller holds the room lock; word must be read before this
// call clears it.
func (o *Orchestrator) finishRound(s *Session, roomID, word string) []func() {
	scores := s.Players()
	s.EndRound()

	return []func(){
		func() {
			o.broadcast.ToRoom(roomID, model.EventSystemMessage, model.SystemMessagePayload{
				Message: fmt.Sprintf("All players have guessed the word: %s!", word),
			})
		},
		func() {
			o.broadcast.ToRoom(roomID, model.EventRoundEnd, model.RoundEndPayload{Word: word, Scores: scores})
		},
		func() {
			o.afterFunc(o.cfg.NextRoundDelay, func() {
				o.rotateAndStart(roomID, word)
			})
		},
	}
}

// announceRoundStart captures the broadcasts for a freshly started round:
// a word-less snapshot for the room and a word-bearing one for the drawer
// alone. Caller holds the room lock.
func (o *Orchestrator) announceRoundStart(s *Session, roomID, previousWord string, rotation bool) []func() {
	drawerID := s.CurrentDrawer()
	drawerName, _ := s.PlayerName(drawerID)
	word := s.Word()
	roomState := s.VisibleState("")
	drawerState := s.VisibleState(drawerID)

	var sends []func()
	if rotation {
		sends = append(sends, func() {
			o.broadcast.ToRoom(roomID, model.EventNewRound, model.NewRoundPayload{
				Drawer:       drawerName,
				PreviousWord: previousWord,
			})
		})
	}
	sends = append(sends,
		func() { o.broadcast.ToRoom(roomID, model.EventGameState, roomState) },
		func() { o.broadcast.ToConn(drawerID, model.EventGameState, drawerState) },
		func() { o.stats.RoundStarted(roomID, drawerName, word) },
	)
	return sends
}

// closeGuessHint reports whether an incorrect guess was nearly right.
// Caller holds the room lock.
func (o *Orchestrator) closeGuessHint(s *Session, connID model.ConnID, guess string) (string, bool) {
	if !s.RoundActive() || connID == s.CurrentDrawer() {
		return "", false
	}
	distance := levenshtein.ComputeDistance(strings.ToLower(guess), strings.ToLower(s.Word()))
	if distance == 0 || distance > 2 {
		return "", false
	}
	return fmt.Sprintf("'%s' is close!", guess), true
}

func (o *Orchestrator) connInfo(connID model.ConnID) (connInfo, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	info, ok := o.conns[connID]
	return info, ok
}

func (o *Orchestrator) newSession(roomID string) *Session {
	return NewSession(roomID, o.cfg.Session, o.words, o.logger, func(seq uint64) {
		o.handleTick(roomID, seq)
	})
}
