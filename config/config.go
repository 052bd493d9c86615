package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meghashyamc/bounce2d/geometry"
	"github.com/meghashyamc/bounce2d/sim"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	setDefaults(viperConfig)
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

// Defaults reproduce the reference sandbox: a 640x480 window, ten bodies of
// radius 10 and the player starting at (100, 100).
func setDefaults(v *viper.Viper) {
	defaults := sim.DefaultSettings()
	v.SetDefault("window.width", int(defaults.Width))
	v.SetDefault("window.height", int(defaults.Height))
	v.SetDefault("window.title", "Circle Game")
	v.SetDefault("sim.radius", defaults.Radius)
	v.SetDefault("sim.bodies", defaults.BodyCount)
	v.SetDefault("sim.player_x", defaults.PlayerStart.X)
	v.SetDefault("sim.player_y", defaults.PlayerStart.Y)
	v.SetDefault("sim.impulse", defaults.Impulse)
	v.SetDefault("sim.seed", 0)
	v.SetDefault("log.level", "warn")
}

// BindFlags lets command-line flags override the config file. Only flags the
// user actually set take effect.
func (c *Config) BindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"seed":      "sim.seed",
		"bodies":    "sim.bodies",
		"log-level": "log.level",
	}
	for flagName, key := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := c.config.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", flagName, err)
		}
	}
	return nil
}

func (c *Config) GetWindowWidth() int {
	windowWidth := c.config.GetInt("WINDOW_WIDTH")
	if windowWidth == 0 {
		windowWidth = c.config.GetInt("window.width")
	}

	return windowWidth
}

func (c *Config) GetWindowHeight() int {
	windowHeight := c.config.GetInt("WINDOW_HEIGHT")
	if windowHeight == 0 {
		windowHeight = c.config.GetInt("window.height")
	}

	return windowHeight
}

func (c *Config) GetWindowTitle() string {
	windowTitle := c.config.GetString("WINDOW_TITLE")
	if len(windowTitle) == 0 {
		windowTitle = c.config.GetString("window.title")
	}

	return windowTitle
}

func (c *Config) GetCircleRadius() float64 {
	radius := c.config.GetFloat64("CIRCLE_RADIUS")
	if radius == 0 {
		radius = c.config.GetFloat64("sim.radius")
	}

	return radius
}

func (c *Config) GetBodyCount() int {
	if c.config.IsSet("BODY_COUNT") {
		return c.config.GetInt("BODY_COUNT")
	}

	return c.config.GetInt("sim.bodies")
}

// Zero is a valid start coordinate and impulse, so presence is checked
// instead of treating zero as unset.
func (c *Config) GetPlayerStart() geometry.Vector {
	return geometry.Vector{
		X: c.getFloat64("PLAYER_X", "sim.player_x"),
		Y: c.getFloat64("PLAYER_Y", "sim.player_y"),
	}
}

func (c *Config) GetImpulse() float64 {
	return c.getFloat64("KEY_IMPULSE", "sim.impulse")
}

func (c *Config) getFloat64(envKey, key string) float64 {
	if c.config.IsSet(envKey) {
		return c.config.GetFloat64(envKey)
	}

	return c.config.GetFloat64(key)
}

// GetSeed returns the seed for initial body placement. Zero means the caller
// should pick one.
func (c *Config) GetSeed() uint64 {
	seed := c.config.GetUint64("SEED")
	if seed == 0 {
		seed = c.config.GetUint64("sim.seed")
	}

	return seed
}

func (c *Config) GetLogLevel() string {
	logLevel := c.config.GetString("LOG_LEVEL")
	if len(logLevel) == 0 {
		logLevel = c.config.GetString("log.level")
	}

	return logLevel
}

func (c *Config) WorldSettings() sim.Settings {
	return sim.Settings{
		Width:       float64(c.GetWindowWidth()),
		Height:      float64(c.GetWindowHeight()),
		Radius:      c.GetCircleRadius(),
		BodyCount:   c.GetBodyCount(),
		PlayerStart: c.GetPlayerStart(),
		Impulse:     c.GetImpulse(),
	}
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Debug("failed to find project root with config directory, will use defaults and environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Debug("failed to find config file within config directory, will use defaults and environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
