package experience

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
)

// ReplayVersion is the current replay file version
const ReplayVersion = 1

// Replay is a deterministic action trace. Calling ResetSeed(Seed) on a
// simulator of BoardSize and applying Actions in order reproduces the
// episode, as long as the reward configuration is unchanged.
type Replay struct {
	Version    int           `yaml:"version"`
	Seed       int64         `yaml:"seed"`
	BoardSize  int           `yaml:"board_size"`
	Episode    int           `yaml:"episode,omitempty"`
	Score      int           `yaml:"score"`
	Return     float64       `yaml:"return"`
	Steps      int           `yaml:"steps"`
	Reason     string        `yaml:"reason"`
	RecordedAt time.Time     `yaml:"recorded_at"`
	Actions    []core.Action `yaml:"actions,flow"`
}

// FromEpisode builds a replay from a greedy runner episode
func FromEpisode(res learning.EpisodeResult, boardSize int) *Replay {
	actions := make([]core.Action, len(res.Actions))
	copy(actions, res.Actions)
	return &Replay{
		Version:    ReplayVersion,
		Seed:       res.Seed,
		BoardSize:  boardSize,
		Episode:    res.Episode,
		Score:      res.Score,
		Return:     res.Return,
		Steps:      res.Steps,
		Reason:     res.Reason.String(),
		RecordedAt: time.Now().UTC(),
		Actions:    actions,
	}
}

// EndReason parses the recorded reason
func (r *Replay) EndReason() game.EndReason {
	return game.ParseEndReason(r.Reason)
}

// Save writes the replay as YAML
func (r *Replay) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal replay: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create replay directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write replay: %w", err)
	}
	return nil
}

// LoadReplay reads and validates a replay file
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrReplayNotFound, path)
		}
		return nil, fmt.Errorf("failed to read replay %s: %w", path, err)
	}

	var r Replay
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse replay %s: %w", path, err)
	}
	if r.Version != ReplayVersion {
		return nil, fmt.Errorf("%w: %d", ErrReplayVersion, r.Version)
	}
	for i, a := range r.Actions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("replay %s step %d: %w", path, i, err)
		}
	}
	return &r, nil
}
