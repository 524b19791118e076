package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScore renders a 0-100 quality score as a bar like [████░░░░]  45.0.
// Green from 80, yellow from 50, red below.
func RenderScore(score float64, width int) string {
	score = min(max(score, 0), 100)
	width = max(width, 2)

	filled := min(int(score/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case score < 50:
		style = StyleRed
	case score < 80:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %5.1f", style.Render(bar), score)
}
