package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/drawdash/drawdash/internal/model"
	"github.com/drawdash/drawdash/internal/testutil"
)

// stubWords cycles through a fixed word list
type stubWords struct {
	mu    sync.Mutex
	words []string
	idx   int
	err   error
}

func (w *stubWords) RandomWord() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return "", w.err
	}
	word := w.words[w.idx%len(w.words)]
	w.idx++
	return word, nil
}

func testSessionConfig() SessionConfig {
	return SessionConfig{
		RoundDuration: 80,
		// Long enough that no real tick fires during a test
		TickInterval: time.Hour,
	}
}

type SessionSuite struct {
	suite.Suite
	words   *stubWords
	session *Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.words = &stubWords{words: []string{"cat", "dog", "fish"}}
	s.session = NewSession("r1", testSessionConfig(), s.words, testutil.NopLogger(), func(uint64) {})
}

func (s *SessionSuite) TearDownTest() {
	s.session.EndRound()
}

func (s *SessionSuite) player(id string) model.Player {
	return model.Player{ConnID: model.ConnID(id), Username: "user-" + id}
}

// checkInvariants asserts the structural invariants that must hold after
// every operation
func (s *SessionSuite) checkInvariants() {
	s.Equal(s.session.RoundActive(), s.session.Word() != "", "word is set iff a round is active")

	state := s.session.VisibleState("")
	for _, id := range state.CorrectGuessers {
		s.NotEqual(s.session.CurrentDrawer(), id, "drawer can never be a correct guesser")
		found := false
		for _, p := range state.Players {
			if p.ConnID == id {
				found = true
			}
		}
		s.True(found, "correct guessers are always current players")
	}
}

func (s *SessionSuite) TestFirstPlayerBecomesDrawerAndRoundStarts() {
	players := s.session.AddPlayer(s.player("a"))

	s.Len(players, 1)
	s.Equal(model.ConnID("a"), s.session.CurrentDrawer())
	s.True(s.session.RoundActive())
	s.Equal("cat", s.session.Word())
	s.Equal(80, s.session.TimeLeft())
	s.checkInvariants()
}

func (s *SessionSuite) TestStartRoundWithZeroPlayersFails() {
	s.False(s.session.StartRound())
	s.False(s.session.RoundActive())
	s.checkInvariants()
}

func (s *SessionSuite) TestStartRoundWhileActiveFails() {
	s.session.AddPlayer(s.player("a"))
	s.Require().True(s.session.RoundActive())

	s.False(s.session.StartRound())
	s.Equal("cat", s.session.Word(), "failed start must not redraw the word")
}

func (s *SessionSuite) TestStartRoundFailsWhenWordSourceFails() {
	s.words.err = errors.New("no words")

	s.session.AddPlayer(s.player("a"))

	s.False(s.session.RoundActive())
	s.Empty(s.session.Word())
	s.checkInvariants()
}

func (s *SessionSuite) TestStartRoundReplacesMissingDrawer() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.EndRound()

	// Point the drawer at a connection that no longer exists
	s.session.currentDrawer = "ghost"

	s.True(s.session.StartRound())
	s.Contains([]model.ConnID{"a", "b"}, s.session.CurrentDrawer())
	s.checkInvariants()
}

func (s *SessionSuite) TestEndRoundIsIdempotent() {
	s.session.AddPlayer(s.player("a"))

	s.session.EndRound()
	s.session.EndRound()

	s.False(s.session.RoundActive())
	s.Empty(s.session.Word())
	s.Equal(0, s.session.TimeLeft())
	s.checkInvariants()
}

func (s *SessionSuite) TestGuessCaseInsensitive() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))

	s.True(s.session.CheckGuess("b", "CAT"))
	s.checkInvariants()
}

func (s *SessionSuite) TestGuessWrongWord() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))

	s.False(s.session.CheckGuess("b", "dog"))
	s.Empty(s.session.VisibleState("").CorrectGuessers)
}

func (s *SessionSuite) TestDrawerCannotGuess() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))

	s.False(s.session.CheckGuess("a", "cat"))
	s.checkInvariants()
}

func (s *SessionSuite) TestGuessOutsideRoundFails() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.EndRound()

	s.False(s.session.CheckGuess("b", "cat"))
}

func (s *SessionSuite) TestRepeatedCorrectGuessIsIdempotent() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.AddPlayer(s.player("c"))

	s.True(s.session.CheckGuess("b", "cat"))
	s.True(s.session.CheckGuess("b", "cat"))

	s.Len(s.session.VisibleState("").CorrectGuessers, 1)
	s.False(s.session.CheckAllGuessed(), "one of two guessers is not quorum")
}

func (s *SessionSuite) TestQuorumExactlyAtLastGuesser() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.AddPlayer(s.player("c"))

	s.False(s.session.CheckAllGuessed())
	s.session.CheckGuess("b", "cat")
	s.False(s.session.CheckAllGuessed())
	s.session.CheckGuess("c", "cat")
	s.True(s.session.CheckAllGuessed())
}

func (s *SessionSuite) TestQuorumNeverWithLonePlayer() {
	s.session.AddPlayer(s.player("a"))

	s.False(s.session.CheckAllGuessed())
}

func (s *SessionSuite) TestQuorumFalseWhenIdle() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.CheckGuess("b", "cat")
	s.session.EndRound()

	s.False(s.session.CheckAllGuessed())
}

func (s *SessionSuite) TestDrawerRotationVisitsEveryPlayer() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.AddPlayer(s.player("c"))

	seen := []model.ConnID{s.session.CurrentDrawer()}
	for i := 0; i < 2; i++ {
		s.Require().True(s.session.SelectNextDrawer())
		seen = append(seen, s.session.CurrentDrawer())
	}

	s.ElementsMatch([]model.ConnID{"a", "b", "c"}, seen)

	// Full cycle wraps back to the start
	s.session.SelectNextDrawer()
	s.Equal(seen[0], s.session.CurrentDrawer())
}

func (s *SessionSuite) TestSelectNextDrawerNoOpWithOnePlayer() {
	s.session.AddPlayer(s.player("a"))

	s.False(s.session.SelectNextDrawer())
	s.Equal(model.ConnID("a"), s.session.CurrentDrawer())
}

func (s *SessionSuite) TestRemoveDrawerMidRoundStartsNewRound() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	firstSeq := s.session.RoundSeq()

	players := s.session.RemovePlayer("a")

	s.Len(players, 1)
	s.Equal(model.ConnID("b"), s.session.CurrentDrawer())
	s.True(s.session.RoundActive())
	s.Equal(firstSeq+1, s.session.RoundSeq(), "exactly one new round")
	s.NotEqual("cat", s.session.Word(), "new round draws a fresh word")
	s.checkInvariants()
}

func (s *SessionSuite) TestRemoveLastPlayerEndsRound() {
	s.session.AddPlayer(s.player("a"))

	players := s.session.RemovePlayer("a")

	s.Empty(players)
	s.False(s.session.RoundActive())
	s.checkInvariants()
}

func (s *SessionSuite) TestRemoveUnknownPlayerIsNoOp() {
	s.session.AddPlayer(s.player("a"))
	seq := s.session.RoundSeq()

	players := s.session.RemovePlayer("ghost")

	s.Len(players, 1)
	s.Equal(seq, s.session.RoundSeq())
	s.True(s.session.RoundActive())
}

func (s *SessionSuite) TestRemoveGuesserDiscardsTheirGuessRecord() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.AddPlayer(s.player("c"))
	s.session.CheckGuess("b", "cat")

	s.session.RemovePlayer("b")

	s.Empty(s.session.VisibleState("").CorrectGuessers)
	s.checkInvariants()
}

func (s *SessionSuite) TestRemovalCanCompleteQuorum() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.AddPlayer(s.player("c"))
	s.session.CheckGuess("b", "cat")

	s.session.RemovePlayer("c")

	s.True(s.session.CheckAllGuessed())
}

func (s *SessionSuite) TestAddScore() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))

	s.session.AddScore("b", 100)
	s.session.AddScore("b", 100)
	s.session.AddScore("ghost", 100)

	players := s.session.Players()
	s.Equal(0, players[0].Score)
	s.Equal(200, players[1].Score)
}

func (s *SessionSuite) TestRemainingGuessers() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))
	s.session.AddPlayer(s.player("c"))

	s.ElementsMatch([]string{"user-b", "user-c"}, s.session.RemainingGuessers())

	s.session.CheckGuess("b", "cat")
	s.Equal([]string{"user-c"}, s.session.RemainingGuessers())
}

func (s *SessionSuite) TestVisibleStateHidesWordFromNonDrawers() {
	s.session.AddPlayer(s.player("a"))
	s.session.AddPlayer(s.player("b"))

	drawerView := s.session.VisibleState("a")
	s.Require().NotNil(drawerView.Word)
	s.Equal("cat", *drawerView.Word)

	guesserView := s.session.VisibleState("b")
	s.Nil(guesserView.Word)

	roomView := s.session.VisibleState("")
	s.Nil(roomView.Word)
	s.Equal(model.ConnID("a"), roomView.CurrentDrawer)
	s.Equal(80, roomView.RoundDuration)
	s.True(roomView.RoundInProgress)
}

func (s *SessionSuite) TestTickDecrementsTimeLeft() {
	s.session.AddPlayer(s.player("a"))

	s.Equal(79, s.session.Tick())
	s.Equal(78, s.session.Tick())
	s.Equal(2*time.Second, s.session.ElapsedInRound())
}

func (s *SessionSuite) TestTickOutsideRoundIsNoOp() {
	s.Equal(0, s.session.Tick())
}

func (s *SessionSuite) TestRoundSeqAdvancesPerRound() {
	s.session.AddPlayer(s.player("a"))
	s.Equal(uint64(1), s.session.RoundSeq())

	s.session.EndRound()
	s.session.StartRound()
	s.Equal(uint64(2), s.session.RoundSeq())
}
