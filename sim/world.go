package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// Frame is the state published to render-sync consumers after each tick
type Frame struct {
	Tick    uint64       `json:"tick"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Habitat Habitat      `json:"habitat"`
	Agents  []AgentState `json:"agents"`
}

// FrameSink receives a frame after every tick. Implementations must not
// block and must treat the frame as read-only.
type FrameSink interface {
	Sync(Frame)
}

// World represents the simulation state
type World struct {
	Config Config
	Fish   []*Agent
	Sharks []*Agent
	Walls  WallAvoidance

	agents []*Agent // fish followed by sharks
	rng    *rand.Rand
	logger *slog.Logger
	tick   uint64
	sinks  []FrameSink
	mu     sync.RWMutex
}

// NewWorld validates cfg and creates an empty world. A nil rng is replaced
// by one seeded from cfg.Seed; a nil logger by slog.Default().
func NewWorld(cfg Config, rng *rand.Rand, logger *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	walls, err := NewWallAvoidance(cfg)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		Config: cfg,
		Walls:  walls,
		rng:    rng,
		logger: logger,
	}, nil
}

// Populate spawns the configured fish and sharks
func (w *World) Populate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, f := range SpawnFish(w.Config, w.rng) {
		w.addLocked(f)
	}
	for _, s := range SpawnSharks(w.Config, w.rng) {
		w.addLocked(s)
	}
	w.logger.Info("population spawned",
		"fish", len(w.Fish),
		"sharks", len(w.Sharks),
		"habitat", w.Config.Habitat)
}

// AddAgent adds a pre-built agent to the world
func (w *World) AddAgent(a *Agent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.addLocked(a)
}

func (w *World) addLocked(a *Agent) {
	if a.IsFish() {
		w.Fish = append(w.Fish, a)
	} else {
		w.Sharks = append(w.Sharks, a)
	}
	w.agents = append(append(w.agents[:0], w.Fish...), w.Sharks...)
}

// Subscribe registers a sink that receives a frame after every tick
func (w *World) Subscribe(sink FrameSink) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sinks = append(w.sinks, sink)
}

// Run drives Update from a ticker at Config.TickRate until ctx is done
func (w *World) Run(ctx context.Context) {
	interval := time.Second / time.Duration(w.Config.TickRate)
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("simulation stopped", "tick", w.Tick())
			return
		case <-ticker.C:
			w.Update(dt)
		}
	}
}

// Update advances the simulation by one tick of dt seconds
func (w *World) Update(dt float64) {
	w.mu.Lock()
	w.step(dt)
	frame := w.snapshotLocked()
	sinks := w.sinks
	w.mu.Unlock()

	for _, sink := range sinks {
		sink.Sync(frame)
	}
}

func (w *World) step(dt float64) {
	cfg := w.Config

	// 1. Fish that spot a shark start fleeing
	started := StartFleeing(w.Fish, w.Sharks, cfg.Flight.SpeedFactor)

	// 2. Fish clear of every shark calm down
	stopped := StopFleeing(w.Fish, w.Sharks, cfg.Flight.SpeedFactor, cfg.Flight.MaxDistance)

	// 3. Perception and flocking
	Flock(w.Fish, w.visibility(), cfg.Steering)

	// 4. Heading noise
	Wander(w.Fish, w.rng, cfg.Fish.Noise, cfg.Sharks.Noise)
	Wander(w.Sharks, w.rng, cfg.Fish.Noise, cfg.Sharks.Noise)

	// 5. Habitat walls
	AvoidWalls(w.agents, w.Walls)

	// 6. Movement
	Integrate(w.agents, dt, cfg.TimeRate, cfg.Bounds())

	w.tick++

	if started > 0 || stopped > 0 {
		w.logger.Debug("fleeing transitions",
			"tick", w.tick,
			"started", started,
			"stopped", stopped)
	}
}

func (w *World) visibility() Visibility {
	if w.Config.SpatialIndex {
		return BuildVisibilityIndexed(w.Fish, w.Config.Bounds())
	}
	return BuildVisibility(w.Fish)
}

// Tick returns the number of completed ticks
func (w *World) Tick() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tick
}

// Snapshot returns a copy of the current state
func (w *World) Snapshot() Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

func (w *World) snapshotLocked() Frame {
	agents := make([]AgentState, 0, len(w.agents))
	for _, a := range w.agents {
		agents = append(agents, a.State())
	}
	return Frame{
		Tick:    w.tick,
		Width:   w.Config.Width,
		Height:  w.Config.Height,
		Habitat: w.Config.Habitat,
		Agents:  agents,
	}
}

// String implements fmt.Stringer for log output
func (w *World) String() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fmt.Sprintf("World{tick:%d, fish:%d, sharks:%d, habitat:%s}",
		w.tick, len(w.Fish), len(w.Sharks), w.Config.Habitat)
}
