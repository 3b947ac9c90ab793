package reward

import (
	"math/rand/v2"

	"github.com/weplanet/ecoquest/internal/models"
)

// RevealJoin gates the end of a draw on two independent events: the reveal
// animation running its full length and the mission fetch resolving.
// Neither one alone is enough.
type RevealJoin struct {
	timerDone bool
	fetchDone bool
}

func (j *RevealJoin) MarkTimer()   { j.timerDone = true }
func (j *RevealJoin) MarkFetched() { j.fetchDone = true }
func (j *RevealJoin) Reset()       { *j = RevealJoin{} }

func (j RevealJoin) TimerDone() bool { return j.timerDone }
func (j RevealJoin) FetchDone() bool { return j.fetchDone }

// Ready reports whether both conditions hold.
func (j RevealJoin) Ready() bool {
	return j.timerDone && j.fetchDone
}

const fallbackDescription = "Take an eco-friendly action with this mission!"

var fallbackPool = []models.Mission{
	{Title: "Bring an eco bag", BasePoints: 25, BaseCO2Reduction: 150},
	{Title: "Switch off unused lights", BasePoints: 30, BaseCO2Reduction: 200},
	{Title: "Use water carefully", BasePoints: 20, BaseCO2Reduction: 120},
	{Title: "Sort your garbage", BasePoints: 35, BaseCO2Reduction: 180},
	{Title: "Bike or walk instead of driving", BasePoints: 40, BaseCO2Reduction: 300},
}

// FallbackMissions returns a copy of the local mission pool used for the
// reveal animation and when the server cannot supply a mission.
func FallbackMissions() []models.Mission {
	out := make([]models.Mission, len(fallbackPool))
	for i, m := range fallbackPool {
		m.Description = fallbackDescription
		m.Fallback = true
		out[i] = m
	}
	return out
}

// drawFallback picks a pool mission with a random id in [0, 1000).
func drawFallback(rng *rand.Rand, pool []models.Mission) models.Mission {
	m := pool[rng.IntN(len(pool))]
	m.ID = rng.Int64N(1000)
	return m
}
