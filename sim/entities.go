package sim

import (
	"github.com/google/uuid"
)

// Kind tags an agent as prey or predator
type Kind uint8

const (
	KindFish Kind = iota
	KindShark
)

func (k Kind) String() string {
	if k == KindShark {
		return "shark"
	}
	return "fish"
}

// Vision is an agent's forward perception cone
type Vision struct {
	Distance float64 // maximum perception range
	Angle    float64 // half-width of the cone either side of heading
}

// Agent is a simulated fish or shark
type Agent struct {
	ID       uuid.UUID
	Kind     Kind
	Position Vec2
	Heading  float64 // radians, always in [-Pi, Pi)
	Speed    float64
	Size     float64 // fixed at spawn
	Vision   Vision  // derived from Size at spawn and never recomputed
	Fleeing  bool    // fish only
}

// NewFish creates a fish of the given size. Speed and vision distance
// scale with size.
func NewFish(cfg Config, position Vec2, heading, size float64) *Agent {
	return &Agent{
		ID:       uuid.New(),
		Kind:     KindFish,
		Position: position,
		Heading:  NormalizeRadians(heading),
		Speed:    cfg.Fish.Speed * size,
		Size:     size,
		Vision: Vision{
			Distance: cfg.Vision.Distance * size,
			Angle:    cfg.Vision.Angle,
		},
	}
}

// NewShark creates a shark of the given size with the narrower shark cone
func NewShark(cfg Config, position Vec2, heading, size float64) *Agent {
	return &Agent{
		ID:       uuid.New(),
		Kind:     KindShark,
		Position: position,
		Heading:  NormalizeRadians(heading),
		Speed:    cfg.Sharks.Speed * size,
		Size:     size,
		Vision: Vision{
			Distance: cfg.Vision.Distance * size,
			Angle:    cfg.Vision.SharkAngle,
		},
	}
}

// Turn adds delta to the heading, keeping it normalized
func (a *Agent) Turn(delta float64) {
	a.Heading = NormalizeRadians(a.Heading + delta)
}

// IsFish reports whether the agent is prey
func (a *Agent) IsFish() bool {
	return a.Kind == KindFish
}

// State returns the render-facing view of the agent
func (a *Agent) State() AgentState {
	return AgentState{
		ID:      a.ID.String(),
		Kind:    a.Kind,
		X:       a.Position.X,
		Y:       a.Position.Y,
		Heading: a.Heading,
		Size:    a.Size,
		Fleeing: a.Fleeing,
	}
}

// AgentState is a read-only copy of an agent published after each tick
type AgentState struct {
	ID      string  `json:"id"`
	Kind    Kind    `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Size    float64 `json:"size"`
	Fleeing bool    `json:"fleeing"`
}
