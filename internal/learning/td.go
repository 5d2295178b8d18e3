package learning

import "github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"

// TDUpdate applies one Q-learning update to table and returns the TD error.
//
//	target = reward                        if done
//	target = reward + discount * max Q[next] otherwise
//	Q[obs, a] += rate * (target - Q[obs, a])
func TDUpdate(table *ValueTable, obs int, a core.Action, reward float64, next int, done bool, rate, discount float64) float64 {
	target := reward
	if !done {
		target += discount * table.Max(next)
	}
	current := table.Get(obs, a)
	tdErr := target - current
	table.Set(obs, a, current+rate*tdErr)
	return tdErr
}
