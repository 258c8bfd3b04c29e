package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// pageSize is the number of articles requested per page.
const pageSize = 10

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 20000

// namedKeys are key names bubbletea reports for non-printable keys.
var namedKeys = map[string]bool{
	"enter": true, "esc": true, "tab": true, "backspace": true, "delete": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true, "insert": true,
}

// isNamedKey reports whether key is a key name rather than typed text.
func isNamedKey(key string) bool {
	if namedKeys[key] {
		return true
	}
	for _, prefix := range []string{"ctrl+", "alt+", "shift+"} {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	if len(key) >= 2 && key[0] == 'f' {
		if _, err := strconv.Atoi(key[1:]); err == nil {
			return true
		}
	}
	return false
}

// keyText returns the text a key press types. Pasted runes come through
// unbracketed.
func keyText(msg tea.KeyMsg) string {
	if msg.Type == tea.KeyRunes {
		return string(msg.Runes)
	}
	return msg.String()
}

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware), typed characters and pasted text.
// Returns the text unchanged for named keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if key == "" || isNamedKey(key) {
		return text
	}
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if runes := []rune(key); len(runes) > room {
		key = string(runes[:room])
	}
	return text + key
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderField renders one labeled form input. Masked fields show bullets.
func renderField(label, value string, focused, masked bool) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	cursor := "  "
	style := metaStyle
	if focused {
		cursor = accentStyle.Render("▸") + " "
		style = inputPromptStyle
		shown += "█"
	}
	if value == "" && !focused {
		shown = inputPlaceholderStyle.Render("-")
	}
	return cursor + style.Render(label+":") + " " + shown
}
