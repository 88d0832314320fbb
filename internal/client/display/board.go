package display

import (
	"fmt"
	"strings"
)

// RenderBoard prints the server's ASCII board with colored stones
func RenderBoard(asciiBoard string) {
	fmt.Print(ColorBoard(asciiBoard))
}

// ColorBoard colors an ASCII board: coordinates cyan, black stones red,
// white stones blue
func ColorBoard(asciiBoard string) string {
	var sb strings.Builder

	for _, line := range strings.Split(asciiBoard, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'f', char >= '1' && char <= '6':
				sb.WriteString(Cyan + string(char) + Reset)
			case char == 'B':
				sb.WriteString(Red + "B" + Reset)
			case char == 'W':
				sb.WriteString(Blue + "W" + Reset)
			default:
				sb.WriteRune(char)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "white" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}
