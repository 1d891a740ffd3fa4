package notation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/battlecore/battlecore/engine"
)

// TestSerializeDeserializeRoundTrip checks the wire contract spec.md §6
// states: deserialize(serialize(s)) = s up to the two bookkeeping flags,
// which RecalculateBookkeepingFlags recomputes identically either way.
func TestSerializeDeserializeRoundTrip(t *testing.T) {
	st := engine.NewState()
	one, err := engine.NewCreatureFromSpecies("squirtle", 100, []string{"watergun", "protect", "rest", "toxic"})
	if err != nil {
		t.Fatalf("building squirtle: %v", err)
	}
	two, err := engine.NewCreatureFromSpecies("charmander", 100, []string{"flamethrower", "willowisp", "substitute", "splash"})
	if err != nil {
		t.Fatalf("building charmander: %v", err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideTwo.Pokemon[0] = two
	st.Weather = engine.StateWeather{Kind: engine.WeatherRain, TurnsRemaining: 3}
	st.Terrain = engine.StateTerrain{Kind: engine.TerrainElectric, TurnsRemaining: 2}
	st.TrickRoom = engine.TrickRoom{Active: true, TurnsRemaining: 1}
	st.SideOne.Conditions.StealthRock = 1
	st.SideOne.StatBoosts.Set(engine.StatAttack, 2)
	st.RecalculateBookkeepingFlags()

	encoded := Serialize(st)
	decoded, err := Deserialize(encoded)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if diff := cmp.Diff(st, decoded); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}

	if reencoded := Serialize(decoded); reencoded != encoded {
		t.Errorf("re-serialized form differs:\n  got  %s\n  want %s", reencoded, encoded)
	}
}
