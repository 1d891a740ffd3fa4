package engine

// StateWeather is the field-wide weather: its kind and remaining duration.
// Ability-sourced "harsh" variants run forever (spec.md §3).
type StateWeather struct {
	Kind           WeatherKind
	TurnsRemaining int
}

// StateTerrain is the field-wide terrain: its kind and remaining duration.
type StateTerrain struct {
	Kind           TerrainKind
	TurnsRemaining int
}

// TrickRoom tracks whether the speed-order inversion is active.
type TrickRoom struct {
	Active         bool
	TurnsRemaining int
}

// State is the entire mutable battle world: two sides, the shared field
// conditions, and the two bookkeeping flags that gate optional per-turn
// writes a generator call can otherwise skip (spec.md §9 "Optional
// bookkeeping").
type State struct {
	SideOne *Side
	SideTwo *Side

	Weather     StateWeather
	Terrain     StateTerrain
	TrickRoom   TrickRoom
	TeamPreview bool

	TrackDamageDealt  bool
	TrackLastUsedMove bool
}

// NewState returns an empty, zeroed two-sided battle.
func NewState() *State {
	return &State{SideOne: NewSide(), SideTwo: NewSide()}
}

// Side returns the Side for ref.
func (st *State) Side(ref SideRef) *Side {
	if ref == SideOne {
		return st.SideOne
	}
	return st.SideTwo
}

// Sides returns (this side, the other side) for ref, the shape most
// generator/damage code wants.
func (st *State) Sides(ref SideRef) (mine, theirs *Side) {
	if ref == SideOne {
		return st.SideOne, st.SideTwo
	}
	return st.SideTwo, st.SideOne
}

// BattleOver returns 1.0 if side one has won, -1.0 if side two has won, and
// 0.0 if the battle continues - mirroring the Rust original's
// battle_is_over() signed-float contract; search/evaluate.go's rolloutValue
// maps a positive result to 1 and a negative one to 0.
func (st *State) BattleOver() float64 {
	oneAlive := st.SideOne.AnyAlive()
	twoAlive := st.SideTwo.AnyAlive()
	switch {
	case !oneAlive && !twoAlive:
		return 0 // simultaneous knockout: a draw, not "ongoing", but scores as neutral.
	case !oneAlive:
		return -1
	case !twoAlive:
		return 1
	default:
		return 0
	}
}

// Clone returns an independent deep copy, used by parallel search workers
// that each need their own mutable State (spec.md §5: "no shared mutable
// structure crosses threads").
func (st *State) Clone() *State {
	out := &State{
		Weather:           st.Weather,
		Terrain:           st.Terrain,
		TrickRoom:         st.TrickRoom,
		TeamPreview:       st.TeamPreview,
		TrackDamageDealt:  st.TrackDamageDealt,
		TrackLastUsedMove: st.TrackLastUsedMove,
	}
	out.SideOne = cloneSide(st.SideOne)
	out.SideTwo = cloneSide(st.SideTwo)
	return out
}

func cloneSide(s *Side) *Side {
	cp := *s
	cp.Volatiles = make(map[Volatile]bool, len(s.Volatiles))
	for k, v := range s.Volatiles {
		cp.Volatiles[k] = v
	}
	if s.SavedPivotMove != nil {
		saved := *s.SavedPivotMove
		cp.SavedPivotMove = &saved
	}
	return &cp
}

// RecalculateBookkeepingFlags scans every non-fainted creature's moves for a
// move that reads damage-dealt or last-used-move bookkeeping, and sets the
// two State flags accordingly. This reproduces the 20% optimization
// documented in spec.md §3/§9: the generator only pays for bookkeeping when
// some move on the field actually cares.
func (st *State) RecalculateBookkeepingFlags() {
	st.TrackDamageDealt = sideNeedsDamageDealtTracking(st.SideOne) || sideNeedsDamageDealtTracking(st.SideTwo)
	st.TrackLastUsedMove = sideNeedsLastMoveTracking(st.SideOne) || sideNeedsLastMoveTracking(st.SideTwo)
}

func sideNeedsDamageDealtTracking(s *Side) bool {
	for i := range s.Pokemon {
		p := &s.Pokemon[i]
		for j := 0; j < p.NMoves; j++ {
			if damageDealtMoves[p.Moves[j].ID] {
				return true
			}
		}
	}
	return false
}

func sideNeedsLastMoveTracking(s *Side) bool {
	for i := range s.Pokemon {
		p := &s.Pokemon[i]
		for j := 0; j < p.NMoves; j++ {
			if lastUsedMoveMoves[p.Moves[j].ID] {
				return true
			}
		}
	}
	return false
}
