package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
)

// Config holds all configuration for the application
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Training   TrainingConfig   `mapstructure:"training"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Checkpoint CheckpointConfig `mapstructure:"checkpoint"`
	UI         UIConfig         `mapstructure:"ui"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// GameConfig holds simulator settings
type GameConfig struct {
	BoardSize int               `mapstructure:"board_size"`
	Rewards   game.RewardConfig `mapstructure:"rewards"`
}

// TrainingConfig holds Q-learning hyperparameters
type TrainingConfig struct {
	Episodes             int     `mapstructure:"episodes"`
	LearningRate         float64 `mapstructure:"learning_rate"`
	Discount             float64 `mapstructure:"discount"`
	EpsilonStart         float64 `mapstructure:"epsilon_start"`
	EpsilonEnd           float64 `mapstructure:"epsilon_end"`
	EpsilonDecayEpisodes int     `mapstructure:"epsilon_decay_episodes"`
	Seed                 int64   `mapstructure:"seed"`
	RenderEvery          int     `mapstructure:"render_every"`
	ReportEvery          int     `mapstructure:"report_every"`
	ChartPath            string  `mapstructure:"chart_path"`
}

// EvaluationConfig holds greedy evaluation settings
type EvaluationConfig struct {
	Episodes     int    `mapstructure:"episodes"`
	Seed         int64  `mapstructure:"seed"`
	RenderEvery  int    `mapstructure:"render_every"`
	ReplayPath   string `mapstructure:"replay_path"`
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// CheckpointConfig holds value table file locations
type CheckpointConfig struct {
	SavePath string `mapstructure:"save_path"`
	LoadPath string `mapstructure:"load_path"`
}

// UIConfig holds window settings
type UIConfig struct {
	CellSize  int          `mapstructure:"cell_size"`
	FPS       int          `mapstructure:"fps"`
	Title     string       `mapstructure:"title"`
	Episodes  int          `mapstructure:"episodes"`
	ReplayDir string       `mapstructure:"replay_dir"`
	Colors    ColorsConfig `mapstructure:"colors"`
}

// ColorsConfig holds the board palette as RGB triples
type ColorsConfig struct {
	Background [3]int `mapstructure:"background"`
	Grid       [3]int `mapstructure:"grid"`
	Head       [3]int `mapstructure:"head"`
	Body       [3]int `mapstructure:"body"`
	Food       [3]int `mapstructure:"food"`
}

// ServerConfig holds policy server configuration
type ServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	WatchCheckpoint       bool   `mapstructure:"watch_checkpoint"`
	MonitorInterval       int    `mapstructure:"monitor_interval"`
}

// LoggingConfig holds CLI logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	rewards := game.DefaultRewardConfig()

	// Game defaults
	v.SetDefault("game.board_size", 16)
	v.SetDefault("game.rewards.step_cost", rewards.StepCost)
	v.SetDefault("game.rewards.collision", rewards.Collision)
	v.SetDefault("game.rewards.food", rewards.Food)
	v.SetDefault("game.rewards.closer", rewards.Closer)
	v.SetDefault("game.rewards.farther", rewards.Farther)
	v.SetDefault("game.rewards.alignment", rewards.Alignment)
	v.SetDefault("game.rewards.stagnation", rewards.Stagnation)
	v.SetDefault("game.rewards.stagnation_limit", rewards.StagnationLimit)

	// Training defaults
	v.SetDefault("training.episodes", 5000)
	v.SetDefault("training.learning_rate", 0.1)
	v.SetDefault("training.discount", 0.99)
	v.SetDefault("training.epsilon_start", 1.0)
	v.SetDefault("training.epsilon_end", 0.05)
	v.SetDefault("training.epsilon_decay_episodes", 4000)
	v.SetDefault("training.seed", 42)
	v.SetDefault("training.render_every", 0)
	v.SetDefault("training.report_every", 0)
	v.SetDefault("training.chart_path", "")

	// Evaluation defaults
	v.SetDefault("evaluation.episodes", 100)
	v.SetDefault("evaluation.seed", 0)
	v.SetDefault("evaluation.render_every", 0)
	v.SetDefault("evaluation.replay_path", "")
	v.SetDefault("evaluation.snapshot_path", "")

	// Checkpoint defaults
	v.SetDefault("checkpoint.save_path", "q_table.json")
	v.SetDefault("checkpoint.load_path", "")

	// UI defaults
	v.SetDefault("ui.cell_size", 40)
	v.SetDefault("ui.fps", 10)
	v.SetDefault("ui.title", "SnakeRL")
	v.SetDefault("ui.episodes", 5)
	v.SetDefault("ui.replay_dir", "")
	v.SetDefault("ui.colors.background", []int{30, 30, 30})
	v.SetDefault("ui.colors.grid", []int{45, 45, 45})
	v.SetDefault("ui.colors.head", []int{0, 120, 120})
	v.SetDefault("ui.colors.body", []int{0, 255, 255})
	v.SetDefault("ui.colors.food", []int{250, 0, 0})

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 50061)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.enable_reflection", true)
	v.SetDefault("server.graceful_shutdown_delay", 2)
	v.SetDefault("server.watch_checkpoint", true)
	v.SetDefault("server.monitor_interval", 30)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/snake-rl")
	}

	v.SetEnvPrefix("SNAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults; a malformed one is an error
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Schedule builds the exploration schedule from the training section
func (c TrainingConfig) Schedule() learning.EpsilonSchedule {
	return learning.EpsilonSchedule{
		Start:         c.EpsilonStart,
		End:           c.EpsilonEnd,
		DecayEpisodes: c.EpsilonDecayEpisodes,
	}
}

// Palette converts the configured colours
func (c ColorsConfig) Palette() common.Palette {
	return common.PaletteFrom(c.Background, c.Grid, c.Head, c.Body, c.Food)
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate game settings
	if c.Game.BoardSize < game.MinBoardSize {
		return fmt.Errorf("game.board_size must be at least %d", game.MinBoardSize)
	}
	if err := c.Game.Rewards.Validate(); err != nil {
		return fmt.Errorf("game.rewards: %w", err)
	}

	// Validate training settings
	t := c.Training
	if t.Episodes < 0 {
		return fmt.Errorf("training.episodes must be non-negative")
	}
	if t.LearningRate <= 0 || t.LearningRate > 1 {
		return fmt.Errorf("training.learning_rate must be in (0, 1]")
	}
	if err := common.ValidateProbability(t.Discount, "training.discount"); err != nil {
		return err
	}
	if err := t.Schedule().Validate(); err != nil {
		return fmt.Errorf("training: %w", err)
	}
	if t.RenderEvery < 0 || t.ReportEvery < 0 {
		return fmt.Errorf("training.render_every and training.report_every must be non-negative")
	}

	// Validate evaluation settings
	if c.Evaluation.Episodes < 0 {
		return fmt.Errorf("evaluation.episodes must be non-negative")
	}
	if c.Evaluation.RenderEvery < 0 {
		return fmt.Errorf("evaluation.render_every must be non-negative")
	}

	if c.Checkpoint.SavePath == "" {
		return fmt.Errorf("checkpoint.save_path must be set")
	}

	// Validate UI settings
	if c.UI.CellSize <= 0 {
		return fmt.Errorf("ui.cell_size must be positive")
	}
	if c.UI.FPS < 1 || c.UI.FPS > 60 {
		return fmt.Errorf("ui.fps must be between 1 and 60")
	}
	if c.UI.Episodes < 0 {
		return fmt.Errorf("ui.episodes must be non-negative")
	}
	colors := map[string][3]int{
		"ui.colors.background": c.UI.Colors.Background,
		"ui.colors.grid":       c.UI.Colors.Grid,
		"ui.colors.head":       c.UI.Colors.Head,
		"ui.colors.body":       c.UI.Colors.Body,
		"ui.colors.food":       c.UI.Colors.Food,
	}
	for name, rgb := range colors {
		if err := common.ValidateRGB(rgb, name); err != nil {
			return err
		}
	}

	// Validate server configuration
	if err := common.ValidatePort(c.Server.Port, "server.port"); err != nil {
		return err
	}
	if c.Server.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.MonitorInterval <= 0 {
		return fmt.Errorf("server.monitor_interval must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
