package main

import (
	"os"
	"path/filepath"
	"testing"

	"fishy-flock/sim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, DefaultAddr, config.Server.Addr)
	assert.Equal(t, sim.Default(), config.Sim)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_FileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
sim:
  habitat: rectangle
  fish:
    count: 50
  seed: 77
server:
  addr: ":9000"
logging:
  format: json
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, sim.HabitatRectangle, config.Sim.Habitat)
	assert.Equal(t, 50, config.Sim.Fish.Count)
	assert.Equal(t, uint64(77), config.Sim.Seed)
	assert.Equal(t, ":9000", config.Server.Addr)
	assert.Equal(t, "json", config.Logging.Format)

	// untouched keys keep their defaults
	assert.Equal(t, sim.DefaultFishSpeed, config.Sim.Fish.Speed)
	assert.Equal(t, sim.DefaultSharkCount, config.Sim.Sharks.Count)
	assert.Equal(t, DefaultBroadcastRate, config.Server.BroadcastRate)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "sim: [not, a, map]"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FLOCK_ADDR", "127.0.0.1:7000")
	t.Setenv("FLOCK_HABITAT", "rectangle")
	t.Setenv("FLOCK_SPATIAL_INDEX", "1")
	t.Setenv("FLOCK_SEED", "0x10")
	t.Setenv("FLOCK_FISH", "12")
	t.Setenv("FLOCK_SHARKS", "0")
	t.Setenv("FLOCK_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", config.Server.Addr)
	assert.Equal(t, sim.HabitatRectangle, config.Sim.Habitat)
	assert.True(t, config.Sim.SpatialIndex)
	assert.Equal(t, uint64(16), config.Sim.Seed)
	assert.Equal(t, 12, config.Sim.Fish.Count)
	assert.Equal(t, 0, config.Sim.Sharks.Count)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "sim:\n  fish:\n    count: 50\n")
	t.Setenv("FLOCK_FISH", "5")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, config.Sim.Fish.Count)
}

func TestLoadConfig_BadEnv(t *testing.T) {
	for _, key := range []string{"FLOCK_SEED", "FLOCK_FISH", "FLOCK_SHARKS"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "lots")
			_, err := LoadConfig("")
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestAppConfigValidate(t *testing.T) {
	config := DefaultConfig()
	config.Sim.Habitat = "hexagon"
	assert.ErrorIs(t, config.Validate(), sim.ErrInvalidConfig)

	config = DefaultConfig()
	config.Server.BroadcastRate = 0
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Server.BroadcastRate = 2e9
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Sim.TickRate = 2e9
	assert.ErrorIs(t, config.Validate(), sim.ErrInvalidConfig)

	config = DefaultConfig()
	config.Server.BroadcastRate = MaxBroadcastRate
	assert.NoError(t, config.Validate())

	config = DefaultConfig()
	config.Logging.Level = "loud"
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Logging.Format = "xml"
	assert.Error(t, config.Validate())
}
