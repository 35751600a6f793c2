package daifugo

// FieldState is the trick currently heading the table: the cards a
// follower must beat plus their classification and the lock progress.
type FieldState struct {
	Cards       CardSet
	Type        CardType
	Count       int
	BaseRank    int
	SuitPattern int

	Locked    bool
	LockCount int
}

// NewFieldState returns an empty field.
func NewFieldState() *FieldState {
	f := &FieldState{}
	f.Clear()
	return f
}

// Clear flushes the field when the trick flows.
func (f *FieldState) Clear() {
	f.Cards = NewCardSet()
	f.Type = TypeEmpty
	f.Count = 0
	f.BaseRank = -1
	f.SuitPattern = 0
	f.Locked = false
	f.LockCount = 0
}

// IsEmpty reports whether no trick is in progress.
func (f *FieldState) IsEmpty() bool {
	return f.Type == TypeEmpty
}

// GameState tracks one game of a session.
type GameState struct {
	GameNumber int
	TurnNumber int

	CurrentPlayer int
	// LastPlayer is the player heading the trick, -1 before any play.
	LastPlayer int

	IsRevolution  bool
	IsElevenBack  bool
	IsJokerSingle bool

	ConsecutivePasses int
	FinishedCount     int

	Field *FieldState
}

// NewGameState returns the state of a fresh session.
func NewGameState() *GameState {
	return &GameState{
		GameNumber: 1,
		LastPlayer: -1,
		Field:      NewFieldState(),
	}
}

// EffectiveRevolution folds the transient 11-back into the revolution
/// flag: the two XOR.
func (s *GameState) EffectiveRevolution() bool {
	return s.IsRevolution != s.IsElevenBack
}

// ResetForNewRound flushes per-trick state when the field flows. 11-back
// and the joker-single window both die with the trick.
func (s *GameState) ResetForNewRound() {
	s.Field.Clear()
	s.ConsecutivePasses = 0
	s.IsJokerSingle = false
	s.IsElevenBack = false
}

// ResetForNewGame flushes everything except the game number.
func (s *GameState) ResetForNewGame() {
	s.TurnNumber = 0
	s.CurrentPlayer = 0
	s.LastPlayer = -1
	s.IsRevolution = false
	s.IsElevenBack = false
	s.IsJokerSingle = false
	s.ConsecutivePasses = 0
	s.FinishedCount = 0
	s.Field.Clear()
}
