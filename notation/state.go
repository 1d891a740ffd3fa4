// Package notation implements the flat, ASCII, delimiter-separated state
// text format of spec.md §6, and the lowercase action-name grammar action
// names are exposed in. Grounded on the teacher's notation/epd.go package
// split (one file per serialized shape) and, for the split-and-parse-each-
// field structure, on engine/position.go's PositionFromFEN: split into a
// fixed number of fields, error if the count is wrong, parse each field in
// turn.
package notation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/battlecore/battlecore/engine"
)

// splitFixed splits s on sep into exactly n fields, erroring otherwise -
// the generalization of PositionFromFEN's "fen has too many/few fields"
// check to an arbitrary field count and separator.
func splitFixed(s, sep string, n int, what string) ([]string, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %s has %d fields, want %d", engine.ErrMalformedInput, what, len(parts), n)
	}
	return parts, nil
}

// Serialize renders st in the spec.md §6 state text format.
func Serialize(st *engine.State) string {
	parts := []string{
		serializeSide(st.SideOne),
		serializeSide(st.SideTwo),
		serializeWeather(st.Weather),
		serializeTerrain(st.Terrain),
		serializeTrickRoom(st.TrickRoom),
		strconv.FormatBool(st.TeamPreview),
	}
	return strings.Join(parts, "/")
}

// Deserialize parses the spec.md §6 state text format, then recomputes the
// two bookkeeping flags by scanning for trigger moves, per the format's
// documented contract: "deserialize(serialize(s)) = s up to the two
// bookkeeping bools, which are recomputed by scanning for trigger moves on
// any creature."
func Deserialize(s string) (*engine.State, error) {
	fields, err := splitFixed(s, "/", 6, "state")
	if err != nil {
		return nil, err
	}
	one, err := deserializeSide(fields[0])
	if err != nil {
		return nil, fmt.Errorf("side one: %w", err)
	}
	two, err := deserializeSide(fields[1])
	if err != nil {
		return nil, fmt.Errorf("side two: %w", err)
	}
	weather, err := deserializeWeather(fields[2])
	if err != nil {
		return nil, err
	}
	terrain, err := deserializeTerrain(fields[3])
	if err != nil {
		return nil, err
	}
	trickRoom, err := deserializeTrickRoom(fields[4])
	if err != nil {
		return nil, err
	}
	teamPreview, err := strconv.ParseBool(fields[5])
	if err != nil {
		return nil, fmt.Errorf("%w: team-preview bool %q", engine.ErrMalformedInput, fields[5])
	}

	st := &engine.State{
		SideOne:     one,
		SideTwo:     two,
		Weather:     weather,
		Terrain:     terrain,
		TrickRoom:   trickRoom,
		TeamPreview: teamPreview,
	}
	st.RecalculateBookkeepingFlags()
	return st, nil
}

func serializeWeather(w engine.StateWeather) string {
	return w.Kind.String() + ":" + strconv.Itoa(w.TurnsRemaining)
}

func deserializeWeather(s string) (engine.StateWeather, error) {
	fields, err := splitFixed(s, ":", 2, "weather")
	if err != nil {
		return engine.StateWeather{}, err
	}
	kind, err := engine.WeatherKindFromString(fields[0])
	if err != nil {
		return engine.StateWeather{}, err
	}
	turns, err := strconv.Atoi(fields[1])
	if err != nil {
		return engine.StateWeather{}, fmt.Errorf("%w: weather turns %q", engine.ErrMalformedInput, fields[1])
	}
	return engine.StateWeather{Kind: kind, TurnsRemaining: turns}, nil
}

func serializeTerrain(t engine.StateTerrain) string {
	return t.Kind.String() + ":" + strconv.Itoa(t.TurnsRemaining)
}

func deserializeTerrain(s string) (engine.StateTerrain, error) {
	fields, err := splitFixed(s, ":", 2, "terrain")
	if err != nil {
		return engine.StateTerrain{}, err
	}
	kind, err := engine.TerrainKindFromString(fields[0])
	if err != nil {
		return engine.StateTerrain{}, err
	}
	turns, err := strconv.Atoi(fields[1])
	if err != nil {
		return engine.StateTerrain{}, fmt.Errorf("%w: terrain turns %q", engine.ErrMalformedInput, fields[1])
	}
	return engine.StateTerrain{Kind: kind, TurnsRemaining: turns}, nil
}

func serializeTrickRoom(tr engine.TrickRoom) string {
	return strconv.FormatBool(tr.Active) + ":" + strconv.Itoa(tr.TurnsRemaining)
}

func deserializeTrickRoom(s string) (engine.TrickRoom, error) {
	fields, err := splitFixed(s, ":", 2, "trick-room")
	if err != nil {
		return engine.TrickRoom{}, err
	}
	active, err := strconv.ParseBool(fields[0])
	if err != nil {
		return engine.TrickRoom{}, fmt.Errorf("%w: trick-room bool %q", engine.ErrMalformedInput, fields[0])
	}
	turns, err := strconv.Atoi(fields[1])
	if err != nil {
		return engine.TrickRoom{}, fmt.Errorf("%w: trick-room turns %q", engine.ErrMalformedInput, fields[1])
	}
	return engine.TrickRoom{Active: active, TurnsRemaining: turns}, nil
}

// serializeSide renders one Side as 27 '='-separated fields, per spec.md §6.
func serializeSide(s *engine.Side) string {
	fields := make([]string, 0, 27)
	for i := range s.Pokemon {
		fields = append(fields, serializeCreature(&s.Pokemon[i]))
	}
	fields = append(fields, strconv.Itoa(s.ActiveIndex))
	fields = append(fields, serializeSideConditions(&s.Conditions))
	fields = append(fields, serializeVolatiles(s.Volatiles))
	fields = append(fields, strconv.Itoa(s.SubstituteHP))
	for st := engine.Stat(0); int(st) < 7; st++ {
		fields = append(fields, strconv.Itoa(int(s.StatBoosts.Get(st))))
	}
	fields = append(fields, strconv.Itoa(s.Wish.TurnsRemaining))
	fields = append(fields, strconv.Itoa(s.Wish.HealAmount))
	fields = append(fields, strconv.Itoa(s.FutureSight.TurnsRemaining))
	fields = append(fields, strconv.Itoa(s.FutureSight.SourceSlot))
	fields = append(fields, strconv.FormatBool(s.ForceSwitch))
	fields = append(fields, serializePendingMovePtr(s.SavedPivotMove))
	fields = append(fields, strconv.FormatBool(s.BatonPassing))
	fields = append(fields, strconv.FormatBool(s.ForceTrapped))
	fields = append(fields, serializePendingMove(s.LastUsedMove))
	fields = append(fields, strconv.FormatBool(s.SlowPivotPending))
	return strings.Join(fields, "=")
}

func deserializeSide(in string) (*engine.Side, error) {
	fields, err := splitFixed(in, "=", 27, "side")
	if err != nil {
		return nil, err
	}
	s := engine.NewSide()
	for i := 0; i < 6; i++ {
		c, err := deserializeCreature(fields[i])
		if err != nil {
			return nil, fmt.Errorf("creature %d: %w", i, err)
		}
		s.Pokemon[i] = *c
	}
	idx, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("%w: active-index %q", engine.ErrMalformedInput, fields[6])
	}
	s.ActiveIndex = idx

	conds, err := deserializeSideConditions(fields[7])
	if err != nil {
		return nil, err
	}
	s.Conditions = conds

	vols, err := deserializeVolatiles(fields[8])
	if err != nil {
		return nil, err
	}
	s.Volatiles = vols

	sub, err := strconv.Atoi(fields[9])
	if err != nil {
		return nil, fmt.Errorf("%w: substitute-health %q", engine.ErrMalformedInput, fields[9])
	}
	s.SubstituteHP = sub

	for i := 0; i < 7; i++ {
		v, err := strconv.Atoi(fields[10+i])
		if err != nil {
			return nil, fmt.Errorf("%w: boost %q", engine.ErrMalformedInput, fields[10+i])
		}
		s.StatBoosts.Set(engine.Stat(i), int8(v))
	}

	wishTurns, err := strconv.Atoi(fields[17])
	if err != nil {
		return nil, fmt.Errorf("%w: wish turns %q", engine.ErrMalformedInput, fields[17])
	}
	wishHeal, err := strconv.Atoi(fields[18])
	if err != nil {
		return nil, fmt.Errorf("%w: wish heal %q", engine.ErrMalformedInput, fields[18])
	}
	s.Wish = engine.WishState{TurnsRemaining: wishTurns, HealAmount: wishHeal}

	fsTurns, err := strconv.Atoi(fields[19])
	if err != nil {
		return nil, fmt.Errorf("%w: future-sight turns %q", engine.ErrMalformedInput, fields[19])
	}
	fsSlot, err := strconv.Atoi(fields[20])
	if err != nil {
		return nil, fmt.Errorf("%w: future-sight slot %q", engine.ErrMalformedInput, fields[20])
	}
	s.FutureSight = engine.FutureSightState{TurnsRemaining: fsTurns, SourceSlot: fsSlot}

	forceSwitch, err := strconv.ParseBool(fields[21])
	if err != nil {
		return nil, fmt.Errorf("%w: force-switch bool %q", engine.ErrMalformedInput, fields[21])
	}
	s.ForceSwitch = forceSwitch

	saved, err := deserializePendingMovePtr(fields[22])
	if err != nil {
		return nil, err
	}
	s.SavedPivotMove = saved

	batonPassing, err := strconv.ParseBool(fields[23])
	if err != nil {
		return nil, fmt.Errorf("%w: baton-passing bool %q", engine.ErrMalformedInput, fields[23])
	}
	s.BatonPassing = batonPassing

	forceTrapped, err := strconv.ParseBool(fields[24])
	if err != nil {
		return nil, fmt.Errorf("%w: force-trapped bool %q", engine.ErrMalformedInput, fields[24])
	}
	s.ForceTrapped = forceTrapped

	last, err := deserializePendingMove(fields[25])
	if err != nil {
		return nil, err
	}
	s.LastUsedMove = last

	slowPivot, err := strconv.ParseBool(fields[26])
	if err != nil {
		return nil, fmt.Errorf("%w: slow-pivot bool %q", engine.ErrMalformedInput, fields[26])
	}
	s.SlowPivotPending = slowPivot

	return s, nil
}

func serializeSideConditions(sc *engine.SideConditions) string {
	v := sc.AsSlice()
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ";")
}

func deserializeSideConditions(s string) (engine.SideConditions, error) {
	fields, err := splitFixed(s, ";", engine.NumSideConditions, "side-conditions")
	if err != nil {
		return engine.SideConditions{}, err
	}
	var v [engine.NumSideConditions]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return engine.SideConditions{}, fmt.Errorf("%w: side-condition %q", engine.ErrMalformedInput, f)
		}
		v[i] = n
	}
	var sc engine.SideConditions
	sc.FromSlice(v)
	return sc, nil
}

func serializeVolatiles(vs map[engine.Volatile]bool) string {
	if len(vs) == 0 {
		return "none"
	}
	names := make([]string, 0, len(vs))
	for v, on := range vs {
		if on {
			names = append(names, v.String())
		}
	}
	sort.Strings(names)
	return strings.Join(names, ":")
}

func deserializeVolatiles(s string) (map[engine.Volatile]bool, error) {
	out := make(map[engine.Volatile]bool)
	if s == "none" || s == "" {
		return out, nil
	}
	for _, name := range strings.Split(s, ":") {
		v, err := engine.VolatileFromString(name)
		if err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, nil
}

// serializePendingMove renders the last-used-move tag: "move:N", "switch:N",
// or "move:none".
func serializePendingMove(pm engine.PendingMove) string {
	switch {
	case pm.IsMove:
		return "move:" + strconv.Itoa(pm.Index)
	case pm.IsSwitch:
		return "switch:" + strconv.Itoa(pm.Index)
	default:
		return "move:none"
	}
}

func deserializePendingMove(s string) (engine.PendingMove, error) {
	fields, err := splitFixed(s, ":", 2, "pending-move")
	if err != nil {
		return engine.PendingMove{}, err
	}
	switch fields[0] {
	case "move":
		if fields[1] == "none" {
			return engine.NoLastMove, nil
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return engine.PendingMove{}, fmt.Errorf("%w: pending-move index %q", engine.ErrMalformedInput, fields[1])
		}
		return engine.PendingMove{IsMove: true, Index: n}, nil
	case "switch":
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return engine.PendingMove{}, fmt.Errorf("%w: pending-move index %q", engine.ErrMalformedInput, fields[1])
		}
		return engine.PendingMove{IsSwitch: true, Index: n}, nil
	default:
		return engine.PendingMove{}, fmt.Errorf("%w: pending-move tag %q", engine.ErrMalformedInput, s)
	}
}

// serializePendingMovePtr is the saved-pivot-move field: "none" when nil,
// otherwise the same tag scheme as the last-used-move field.
func serializePendingMovePtr(pm *engine.PendingMove) string {
	if pm == nil {
		return "none"
	}
	return serializePendingMove(*pm)
}

func deserializePendingMovePtr(s string) (*engine.PendingMove, error) {
	if s == "none" {
		return nil, nil
	}
	pm, err := deserializePendingMove(s)
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

// serializeCreature renders one Creature as 25 ','-separated fields, per
// spec.md §6.
func serializeCreature(c *engine.Creature) string {
	fields := []string{
		c.Species,
		strconv.Itoa(c.Level),
		c.TypePrimary.String(),
		c.TypeSecondary.String(),
		strconv.Itoa(c.HP),
		strconv.Itoa(c.MaxHP),
		c.Ability,
		c.Item,
		strconv.Itoa(c.Attack),
		strconv.Itoa(c.Defense),
		strconv.Itoa(c.SpecialAttack),
		strconv.Itoa(c.SpecialDefense),
		strconv.Itoa(c.Speed),
		c.Status.String(),
		strconv.Itoa(c.RestTurns),
		strconv.Itoa(c.SleepTurns),
		strconv.FormatFloat(c.Weight, 'f', -1, 64),
	}
	for i := 0; i < 6; i++ {
		fields = append(fields, serializeMoveSlot(c, i))
	}
	fields = append(fields, strconv.FormatBool(c.Terastallized))
	fields = append(fields, c.TeraType.String())
	return strings.Join(fields, ",")
}

func deserializeCreature(in string) (*engine.Creature, error) {
	fields, err := splitFixed(in, ",", 25, "creature")
	if err != nil {
		return nil, err
	}
	c := &engine.Creature{Species: fields[0], Ability: fields[6], Item: fields[7]}

	level, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: level %q", engine.ErrMalformedInput, fields[1])
	}
	c.Level = level

	c.TypePrimary, err = engine.TypeFromString(fields[2])
	if err != nil {
		return nil, err
	}
	c.TypeSecondary, err = engine.TypeFromString(fields[3])
	if err != nil {
		return nil, err
	}

	ints := make([]int, 0, 9)
	for _, idx := range []int{4, 5, 8, 9, 10, 11, 12, 14, 15} {
		n, err := strconv.Atoi(fields[idx])
		if err != nil {
			return nil, fmt.Errorf("%w: creature field %q", engine.ErrMalformedInput, fields[idx])
		}
		ints = append(ints, n)
	}
	c.HP, c.MaxHP = ints[0], ints[1]
	c.Attack, c.Defense, c.SpecialAttack, c.SpecialDefense, c.Speed = ints[2], ints[3], ints[4], ints[5], ints[6]
	c.RestTurns, c.SleepTurns = ints[7], ints[8]

	c.Status, err = engine.NonVolatileStatusFromString(fields[13])
	if err != nil {
		return nil, err
	}

	weight, err := strconv.ParseFloat(fields[16], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: weight %q", engine.ErrMalformedInput, fields[16])
	}
	c.Weight = weight

	n := 0
	for i := 0; i < 6; i++ {
		slot, err := deserializeMoveSlot(fields[17+i])
		if err != nil {
			return nil, fmt.Errorf("move slot %d: %w", i, err)
		}
		c.Moves[i] = slot
		if slot.ID != "" && slot.ID != "none" {
			n = i + 1
		}
	}
	c.NMoves = n

	tera, err := strconv.ParseBool(fields[23])
	if err != nil {
		return nil, fmt.Errorf("%w: terastallized bool %q", engine.ErrMalformedInput, fields[23])
	}
	c.Terastallized = tera

	c.TeraType, err = engine.TypeFromString(fields[24])
	if err != nil {
		return nil, err
	}

	return c, nil
}

// serializeMoveSlot renders a move slot as "ID;disabled;PP", per spec.md §6.
func serializeMoveSlot(c *engine.Creature, i int) string {
	slot := &c.Moves[i]
	id := slot.ID
	if id == "" {
		id = "none"
	}
	return id + ";" + strconv.FormatBool(slot.Disabled) + ";" + strconv.Itoa(slot.PP)
}

func deserializeMoveSlot(s string) (engine.MoveSlot, error) {
	fields, err := splitFixed(s, ";", 3, "move-slot")
	if err != nil {
		return engine.MoveSlot{}, err
	}
	id := fields[0]
	disabled, err := strconv.ParseBool(fields[1])
	if err != nil {
		return engine.MoveSlot{}, fmt.Errorf("%w: move-slot disabled bool %q", engine.ErrMalformedInput, fields[1])
	}
	pp, err := strconv.Atoi(fields[2])
	if err != nil {
		return engine.MoveSlot{}, fmt.Errorf("%w: move-slot PP %q", engine.ErrMalformedInput, fields[2])
	}
	if id == "none" || id == "" {
		return engine.MoveSlot{ID: "", Disabled: disabled, PP: pp, MaxPP: pp}, nil
	}
	choice, ok := engine.Moves[id]
	if !ok {
		return engine.MoveSlot{}, fmt.Errorf("%w: move id %q", engine.ErrUnknownEnum, id)
	}
	return engine.MoveSlot{ID: id, Choice: choice, Disabled: disabled, PP: pp, MaxPP: pp}, nil
}
