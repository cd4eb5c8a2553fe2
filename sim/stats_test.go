package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	frame := Frame{
		Tick: 7,
		Agents: []AgentState{
			{Kind: KindFish, Heading: 0.4},
			{Kind: KindFish, Heading: 0.4, Fleeing: true},
			{Kind: KindShark, Heading: -2},
		},
	}

	s := Summarize(frame)
	assert.Equal(t, uint64(7), s.Tick)
	assert.Equal(t, 2, s.Fish)
	assert.Equal(t, 1, s.Sharks)
	assert.Equal(t, 1, s.Fleeing)
	assert.InDelta(t, 1, s.Polarization, 1e-12)
}

func TestSummarize_Disordered(t *testing.T) {
	frame := Frame{Agents: []AgentState{
		{Kind: KindFish, Heading: 0},
		{Kind: KindFish, Heading: -math.Pi},
	}}
	assert.InDelta(t, 0, Summarize(frame).Polarization, 1e-12)

	assert.Equal(t, Summary{}, Summarize(Frame{}))
}
