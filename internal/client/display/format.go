package display

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PrettyPrintJSON prints v as indented JSON
func PrettyPrintJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Println(string(data))
}

// Indent re-indents a JSON document; anything else comes back unchanged
func Indent(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ClearScreen is the ANSI sequence that clears the terminal and homes the cursor
const ClearScreen = "\033[H\033[2J"
