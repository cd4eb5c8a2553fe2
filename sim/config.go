package sim

import (
	"errors"
	"fmt"
	"math"
)

const (
	// World configuration
	DefaultWorldWidth  = 1280.0
	DefaultWorldHeight = 720.0

	// Loop configuration
	DefaultTickRate = 120     // simulation ticks per second
	DefaultTimeRate = 120.0   // scales elapsed seconds into movement units
	DefaultSeed     = 0x5eed // used when no seed is configured
	MaxTickRate     = 1000

	// Population
	DefaultFishCount  = 400
	DefaultSharkCount = 2

	// Fish
	DefaultFishSpeed   = 1.25
	DefaultFishSizeMin = 0.5
	DefaultFishSizeMax = 2.0
	DefaultFishNoise   = math.Pi / 45

	// Sharks
	DefaultSharkSpeed       = 0.75
	DefaultSharkSizeMin     = 1.5
	DefaultSharkSizeMax     = 6.0
	DefaultSharkNoise       = math.Pi / 90
	DefaultSharkVisionAngle = math.Pi / 3

	// Vision
	DefaultVisionDistance = 75.0
	DefaultVisionAngle    = math.Pi * 3 / 4

	// Steering
	DefaultSeparation    = math.Pi / 90
	DefaultAlignment     = math.Pi / 180
	DefaultCohesion      = math.Pi / 180
	DefaultWallAvoidance = math.Pi / 60

	// Fleeing
	DefaultFlightSpeed = 4.0   // speed multiplier while fleeing
	DefaultFlightMax   = 200.0 // distance from every shark needed to calm down
)

// ErrInvalidConfig is returned (wrapped) by Config.Validate
var ErrInvalidConfig = errors.New("invalid config")

// Habitat selects the wall avoidance strategy
type Habitat string

const (
	HabitatCircle    Habitat = "circle"
	HabitatRectangle Habitat = "rectangle"
)

// KindConfig holds the per-kind spawn and wander parameters
type KindConfig struct {
	Count   int     `json:"count" yaml:"count"`
	Speed   float64 `json:"speed" yaml:"speed"`
	SizeMin float64 `json:"size_min" yaml:"size_min"`
	SizeMax float64 `json:"size_max" yaml:"size_max"`
	Noise   float64 `json:"noise" yaml:"noise"`
}

// VisionConfig holds the default perception cone
type VisionConfig struct {
	Distance float64 `json:"distance" yaml:"distance"`
	Angle    float64 `json:"angle" yaml:"angle"`
	// SharkAngle replaces Angle for sharks.
	SharkAngle float64 `json:"shark_angle" yaml:"shark_angle"`
}

// SteeringConfig holds the maximum per-tick turn of each steering force
type SteeringConfig struct {
	Separation    float64 `json:"separation" yaml:"separation"`
	Alignment     float64 `json:"alignment" yaml:"alignment"`
	Cohesion      float64 `json:"cohesion" yaml:"cohesion"`
	WallAvoidance float64 `json:"wall_avoidance" yaml:"wall_avoidance"`
}

// FlightConfig controls the fleeing state machine
type FlightConfig struct {
	SpeedFactor float64 `json:"speed_factor" yaml:"speed_factor"`
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
}

// Config contains every parameter consumed by the simulation.
// It is treated as immutable once a World has been built from it.
type Config struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	Habitat Habitat `json:"habitat" yaml:"habitat"`

	Fish   KindConfig `json:"fish" yaml:"fish"`
	Sharks KindConfig `json:"sharks" yaml:"sharks"`

	Vision   VisionConfig   `json:"vision" yaml:"vision"`
	Steering SteeringConfig `json:"steering" yaml:"steering"`
	Flight   FlightConfig   `json:"flight" yaml:"flight"`

	TimeRate float64 `json:"time_rate" yaml:"time_rate"`
	TickRate int     `json:"tick_rate" yaml:"tick_rate"`
	Seed     uint64  `json:"seed" yaml:"seed"`

	// SpatialIndex switches perception to the quadtree-backed scan.
	SpatialIndex bool `json:"spatial_index" yaml:"spatial_index"`
}

// Default returns a Config with the stock tank parameters
func Default() Config {
	return Config{
		Width:   DefaultWorldWidth,
		Height:  DefaultWorldHeight,
		Habitat: HabitatCircle,
		Fish: KindConfig{
			Count:   DefaultFishCount,
			Speed:   DefaultFishSpeed,
			SizeMin: DefaultFishSizeMin,
			SizeMax: DefaultFishSizeMax,
			Noise:   DefaultFishNoise,
		},
		Sharks: KindConfig{
			Count:   DefaultSharkCount,
			Speed:   DefaultSharkSpeed,
			SizeMin: DefaultSharkSizeMin,
			SizeMax: DefaultSharkSizeMax,
			Noise:   DefaultSharkNoise,
		},
		Vision: VisionConfig{
			Distance:   DefaultVisionDistance,
			Angle:      DefaultVisionAngle,
			SharkAngle: DefaultSharkVisionAngle,
		},
		Steering: SteeringConfig{
			Separation:    DefaultSeparation,
			Alignment:     DefaultAlignment,
			Cohesion:      DefaultCohesion,
			WallAvoidance: DefaultWallAvoidance,
		},
		Flight: FlightConfig{
			SpeedFactor: DefaultFlightSpeed,
			MaxDistance: DefaultFlightMax,
		},
		TimeRate: DefaultTimeRate,
		TickRate: DefaultTickRate,
		Seed:     DefaultSeed,
	}
}

// Bounds returns the world rectangle, centred on the origin
func (c Config) Bounds() Rect {
	return Rect{X: -c.Width / 2, Y: -c.Height / 2, Width: c.Width, Height: c.Height}
}

// Radius returns the radius of the circular habitat
func (c Config) Radius() float64 {
	return c.Height / 2
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if err := c.checkFinite(); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive, got %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	switch c.Habitat {
	case HabitatCircle, HabitatRectangle:
	default:
		return fmt.Errorf("%w: unknown habitat %q (valid: circle, rectangle)", ErrInvalidConfig, c.Habitat)
	}
	if err := c.Fish.validate("fish"); err != nil {
		return err
	}
	if err := c.Sharks.validate("sharks"); err != nil {
		return err
	}
	if c.Vision.Distance <= 0 {
		return fmt.Errorf("%w: vision.distance must be positive, got %g", ErrInvalidConfig, c.Vision.Distance)
	}
	if c.Vision.Angle <= 0 || c.Vision.Angle > math.Pi {
		return fmt.Errorf("%w: vision.angle must be in (0, pi], got %g", ErrInvalidConfig, c.Vision.Angle)
	}
	if c.Vision.SharkAngle <= 0 || c.Vision.SharkAngle > math.Pi {
		return fmt.Errorf("%w: vision.shark_angle must be in (0, pi], got %g", ErrInvalidConfig, c.Vision.SharkAngle)
	}
	if c.Steering.Separation < 0 || c.Steering.Alignment < 0 || c.Steering.Cohesion < 0 || c.Steering.WallAvoidance < 0 {
		return fmt.Errorf("%w: steering magnitudes must be non-negative", ErrInvalidConfig)
	}
	if c.Flight.SpeedFactor <= 0 {
		return fmt.Errorf("%w: flight.speed_factor must be positive, got %g", ErrInvalidConfig, c.Flight.SpeedFactor)
	}
	if c.Flight.MaxDistance <= 0 {
		return fmt.Errorf("%w: flight.max_distance must be positive, got %g", ErrInvalidConfig, c.Flight.MaxDistance)
	}
	if c.TimeRate <= 0 {
		return fmt.Errorf("%w: time_rate must be positive, got %g", ErrInvalidConfig, c.TimeRate)
	}
	if c.TickRate <= 0 || c.TickRate > MaxTickRate {
		return fmt.Errorf("%w: tick_rate must be in [1, %d], got %d", ErrInvalidConfig, MaxTickRate, c.TickRate)
	}
	return nil
}

// checkFinite rejects NaN and infinite parameters, which slip past the
// range comparisons below
func (c Config) checkFinite() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"fish.speed", c.Fish.Speed},
		{"fish.size_min", c.Fish.SizeMin},
		{"fish.size_max", c.Fish.SizeMax},
		{"fish.noise", c.Fish.Noise},
		{"sharks.speed", c.Sharks.Speed},
		{"sharks.size_min", c.Sharks.SizeMin},
		{"sharks.size_max", c.Sharks.SizeMax},
		{"sharks.noise", c.Sharks.Noise},
		{"vision.distance", c.Vision.Distance},
		{"vision.angle", c.Vision.Angle},
		{"vision.shark_angle", c.Vision.SharkAngle},
		{"steering.separation", c.Steering.Separation},
		{"steering.alignment", c.Steering.Alignment},
		{"steering.cohesion", c.Steering.Cohesion},
		{"steering.wall_avoidance", c.Steering.WallAvoidance},
		{"flight.speed_factor", c.Flight.SpeedFactor},
		{"flight.max_distance", c.Flight.MaxDistance},
		{"time_rate", c.TimeRate},
	}
	for _, f := range fields {
		if !finite(f.value) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (k KindConfig) validate(name string) error {
	if k.Count < 0 {
		return fmt.Errorf("%w: %s.count must be non-negative, got %d", ErrInvalidConfig, name, k.Count)
	}
	if k.Speed <= 0 {
		return fmt.Errorf("%w: %s.speed must be positive, got %g", ErrInvalidConfig, name, k.Speed)
	}
	if k.SizeMin <= 0 || k.SizeMax < k.SizeMin {
		return fmt.Errorf("%w: %s size range must satisfy 0 < size_min <= size_max, got [%g, %g]",
			ErrInvalidConfig, name, k.SizeMin, k.SizeMax)
	}
	if k.Noise < 0 {
		return fmt.Errorf("%w: %s.noise must be non-negative, got %g", ErrInvalidConfig, name, k.Noise)
	}
	return nil
}
