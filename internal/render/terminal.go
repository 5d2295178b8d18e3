package render

import (
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game"
)

// Terminal renders the board as text, coloured with ANSI escapes when
// colors is set. Without colours the output equals View.String.
func Terminal(v game.View, colors bool) string {
	au := aurora.NewAurora(colors)

	var sb strings.Builder
	for _, row := range v.Grid() {
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch cell {
			case game.HeadSymbol:
				sb.WriteString(au.Bold(au.Cyan(cell)).String())
			case game.BodySymbol:
				sb.WriteString(au.Cyan(cell).String())
			case game.FoodSymbol:
				sb.WriteString(au.Red(cell).String())
			default:
				sb.WriteString(au.BrightBlack(cell).String())
			}
		}
		sb.WriteByte('\n')
	}

	status := v.Status()
	if v.Done {
		if v.Reason == game.ReasonBoardFull {
			sb.WriteString(au.Green(status).String())
		} else {
			sb.WriteString(au.Yellow(status).String())
		}
	} else {
		sb.WriteString(status)
	}
	sb.WriteByte('\n')
	return sb.String()
}
