package display

import (
	"strings"
	"testing"
)

func TestColorBoard(t *testing.T) {
	ascii := "  a b c d e f\n3 . . W B . . 3\n"

	got := ColorBoard(ascii)

	if !strings.Contains(got, Blue+"W"+Reset) {
		t.Errorf("white stone not colored: %q", got)
	}
	if !strings.Contains(got, Red+"B"+Reset) {
		t.Errorf("black stone not colored: %q", got)
	}
	if !strings.Contains(got, Cyan+"f"+Reset) {
		t.Errorf("column letter not colored: %q", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Errorf("expected two lines, got %q", got)
	}
}

func TestColorForTurn(t *testing.T) {
	if got := ColorForTurn("white"); !strings.Contains(got, "White") {
		t.Errorf("ColorForTurn(white) = %q", got)
	}
	if got := ColorForTurn("black"); !strings.Contains(got, "Black") {
		t.Errorf("ColorForTurn(black) = %q", got)
	}
}

func TestIndent(t *testing.T) {
	if got := Indent([]byte(`{"a":1}`)); got != "{\n  \"a\": 1\n}" {
		t.Errorf("Indent(json) = %q", got)
	}
	if got := Indent([]byte("not json")); got != "not json" {
		t.Errorf("Indent(text) = %q", got)
	}
}
