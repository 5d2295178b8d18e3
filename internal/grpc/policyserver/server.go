package policyserver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/monitoring"
	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/persistence"
)

// MaxEvaluateEpisodes caps the work a single Evaluate call may request
const MaxEvaluateEpisodes = 1000

// Config configures a Server
type Config struct {
	BoardSize int
	Rewards   *game.RewardConfig // nil uses the defaults
	Logger    zerolog.Logger
	Monitor   *monitoring.RuntimeMonitor
}

// Server answers greedy-policy queries against a read-only value table.
// Reloading swaps the table pointer; tables are never mutated in place.
type Server struct {
	mu         sync.RWMutex
	checkpoint *persistence.Checkpoint
	source     string

	boardSize int
	rewards   game.RewardConfig
	logger    zerolog.Logger
	monitor   *monitoring.RuntimeMonitor
}

var _ PolicyServiceServer = (*Server)(nil)

// NewServer creates a server with no table loaded
func NewServer(cfg Config) *Server {
	rewards := game.DefaultRewardConfig()
	if cfg.Rewards != nil {
		rewards = *cfg.Rewards
	}
	return &Server{
		boardSize: cfg.BoardSize,
		rewards:   rewards,
		logger:    cfg.Logger.With().Str("component", "PolicyServer").Logger(),
		monitor:   cfg.Monitor,
	}
}

// SetCheckpoint installs cp as the served table
func (s *Server) SetCheckpoint(cp *persistence.Checkpoint, source string) {
	s.mu.Lock()
	s.checkpoint = cp
	s.source = source
	s.mu.Unlock()

	s.logger.Info().
		Str("source", source).
		Str("run_id", cp.RunID).
		Int("episodes", cp.Episodes).
		Int("visited", cp.Table.Visited()).
		Msg("Value table installed")
}

// LoadCheckpoint reads path and installs it. On failure the current table
// keeps serving.
func (s *Server) LoadCheckpoint(path string) error {
	cp, err := persistence.Load(path)
	if err != nil {
		return err
	}
	if cp.BoardSize != 0 && cp.BoardSize != s.boardSize {
		s.logger.Warn().
			Int("checkpoint_board_size", cp.BoardSize).
			Int("board_size", s.boardSize).
			Msg("Checkpoint was trained on a different board size")
	}
	s.SetCheckpoint(cp, path)
	return nil
}

func (s *Server) current() (*persistence.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.checkpoint == nil {
		return nil, status.Error(codes.FailedPrecondition, ErrNoTable.Error())
	}
	return s.checkpoint, nil
}

// Act returns the greedy action for an observation.
//
//	request:  {observation}
//	response: {action, action_name, values[3], features}
func (s *Server) Act(ctx context.Context, req *structpb.Struct) (resp *structpb.Struct, err error) {
	defer func() { s.record(MethodAct, err) }()

	cp, err := s.current()
	if err != nil {
		return nil, err
	}
	obs, err := intField(req, "observation")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	features, err := game.DecodeObservation(obs)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	a := learning.GreedyPolicy{Table: cp.Table}.Act(obs)
	values := make([]interface{}, core.NumActions)
	for i, v := range cp.Table.Row(obs) {
		values[i] = v
	}
	return structpb.NewStruct(map[string]interface{}{
		"action":      int(a),
		"action_name": a.String(),
		"values":      values,
		"features":    features.String(),
	})
}

// Evaluate runs greedy episodes on a fresh simulator.
//
//	request:  {episodes, seed}
//	response: {episodes, base_seed, mean_return, std_return, mean_score,
//	           std_score, mean_steps, std_steps, max_score, best_seed, reasons{}}
func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (resp *structpb.Struct, err error) {
	defer func() { s.record(MethodEvaluate, err) }()

	cp, err := s.current()
	if err != nil {
		return nil, err
	}
	episodes, err := intField(req, "episodes")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if episodes < 1 || episodes > MaxEvaluateEpisodes {
		return nil, status.Errorf(codes.InvalidArgument, "episodes must be between 1 and %d, got %d", MaxEvaluateEpisodes, episodes)
	}
	var seed int64
	if _, ok := req.GetFields()["seed"]; ok {
		n, err := intField(req, "seed")
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		seed = int64(n)
	}

	rewards := s.rewards
	sim, err := game.NewSimulator(game.GameConfig{
		BoardSize: s.boardSize,
		Rewards:   &rewards,
		Rng:       rand.New(rand.NewSource(seed)),
		Logger:    s.logger,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	runner := learning.NewGreedyRunner(sim, cp.Table, s.logger)
	report, err := runner.Evaluate(ctx, learning.EvalConfig{Episodes: episodes, Seed: seed})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	reasons := make(map[string]interface{}, len(report.Reasons))
	for r, n := range report.Reasons {
		reasons[r.String()] = n
	}
	return structpb.NewStruct(map[string]interface{}{
		"episodes":    report.Episodes,
		"base_seed":   strconv.FormatInt(report.BaseSeed, 10),
		"mean_return": report.MeanReturn,
		"std_return":  report.StdReturn,
		"mean_score":  report.MeanScore,
		"std_score":   report.StdScore,
		"mean_steps":  report.MeanSteps,
		"std_steps":   report.StdSteps,
		"max_score":   report.MaxScore,
		"best_seed":   strconv.FormatInt(report.Best.Seed, 10),
		"reasons":     reasons,
	})
}

// Info describes the served table and request counters.
func (s *Server) Info(ctx context.Context, req *structpb.Struct) (resp *structpb.Struct, err error) {
	defer func() { s.record(MethodInfo, err) }()

	fields := map[string]interface{}{
		"service":    ServiceName,
		"board_size": s.boardSize,
		"loaded":     false,
	}

	s.mu.RLock()
	cp, source := s.checkpoint, s.source
	s.mu.RUnlock()
	if cp != nil {
		fields["loaded"] = true
		fields["source"] = source
		fields["run_id"] = cp.RunID
		fields["episodes"] = cp.Episodes
		fields["visited"] = cp.Table.Visited()
	}

	if s.monitor != nil {
		m := s.monitor.Metrics()
		requests := make(map[string]interface{}, len(m.Requests))
		for _, method := range m.Methods() {
			requests[method] = m.Requests[method]
		}
		fields["requests"] = requests
		fields["goroutines"] = m.Current
		fields["uptime_seconds"] = m.Uptime.Seconds()
	}
	return structpb.NewStruct(fields)
}

func (s *Server) record(method string, err error) {
	if s.monitor != nil {
		s.monitor.RecordRequest(method, err)
	}
}

// intField reads a whole number. Seeds travel as strings to survive the
// double precision of Struct numbers.
func intField(req *structpb.Struct, name string) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedMessage, name)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%w: %q is not a whole number", ErrMalformedMessage, name)
		}
		return int(n), nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformedMessage, name, err)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %q has the wrong type", ErrMalformedMessage, name)
	}
}
