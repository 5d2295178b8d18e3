package learning

import "github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/common"

// EpsilonSchedule decays the exploration rate linearly from Start to End
// over DecayEpisodes episodes, then holds it at End.
type EpsilonSchedule struct {
	Start         float64
	End           float64
	DecayEpisodes int
}

// DefaultEpsilonSchedule returns 1.0 -> 0.05 over 4000 episodes
func DefaultEpsilonSchedule() EpsilonSchedule {
	return EpsilonSchedule{Start: 1.0, End: 0.05, DecayEpisodes: 4000}
}

// At returns epsilon for a 1-based episode index
func (s EpsilonSchedule) At(episode int) float64 {
	if s.DecayEpisodes <= 0 {
		return s.End
	}
	frac := common.ClampFloat(float64(episode)/float64(s.DecayEpisodes), 0, 1)
	return common.Lerp(s.Start, s.End, frac)
}

func (s EpsilonSchedule) Validate() error {
	if err := common.ValidateProbability(s.Start, "epsilon start"); err != nil {
		return err
	}
	return common.ValidateProbability(s.End, "epsilon end")
}
