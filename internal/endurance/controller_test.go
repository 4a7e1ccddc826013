package endurance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControllerStartsHighPerformance(t *testing.T) {
	c := NewController()
	assert.Equal(t, HighPerformance, c.mode)
}

func TestControllerHysteresisSingleUpAndDownTransition(t *testing.T) {
	c := NewController()

	transitions := 0
	prev := c.mode

	readings := []struct{ battery, cpu float64 }{
		{30, 60}, // nominal
		{35, 70}, // still nominal
		{43, 76}, // crosses up
		{43, 76}, // stays up, no new transition
		{40, 70}, // above low thresholds, stays Endurance
		{37, 64}, // crosses down
	}

	for _, r := range readings {
		mode := c.SimulateEnvironment(r.battery, r.cpu)
		if mode != prev {
			transitions++
		}
		prev = mode
	}

	assert.Equal(t, 2, transitions)
	assert.Equal(t, HighPerformance, c.mode)
}

func TestControllerCheckStatusReturnsSimulatedModeUnchanged(t *testing.T) {
	c := NewController()
	c.SimulateEnvironment(50, 80)
	assert.Equal(t, Endurance, c.mode)

	assert.Equal(t, Endurance, c.CheckStatus())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "HighPerformance", HighPerformance.String())
	assert.Equal(t, "Endurance", Endurance.String())
}
