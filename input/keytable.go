package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Esc, Ctrl+*, function keys)
	Keys map[tcell.Key]IntentType

	// Plain rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'p': IntentPause,
			' ': IntentPause,
			'r': IntentRestart,
			'm': IntentToggleMute,
			'c': IntentNextPalette,
			'n': IntentNextPreset,
		},
	}
}

// Lookup resolves a key event, IntentNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() != tcell.KeyRune {
		return kt.Keys[ev.Key()]
	}
	r := ev.Rune()
	// Some terminals report Ctrl+letter as a modified rune
	if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return kt.Keys[tcell.KeyCtrlA+tcell.Key(r-'a')]
	}
	return kt.Runes[r]
}

// Override rebinds keys from key name to action name
// Returns error on unknown action names or invalid key names; the table is unchanged on error
func (kt *KeyTable) Override(bindings map[string]string) error {
	type binding struct {
		key    tcell.Key
		r      rune
		intent IntentType
	}
	parsed := make([]binding, 0, len(bindings))
	for keyName, action := range bindings {
		intent, ok := ParseAction(action)
		if !ok {
			return fmt.Errorf("key %q: unknown action %q", keyName, action)
		}
		key, r, err := ParseKey(keyName)
		if err != nil {
			return err
		}
		parsed = append(parsed, binding{key, r, intent})
	}

	for _, b := range parsed {
		if b.key == tcell.KeyRune {
			kt.Runes[b.r] = b.intent
		} else {
			kt.Keys[b.key] = b.intent
		}
	}
	return nil
}

// specialKeyNames are the accepted non-rune key names
var specialKeyNames = map[string]tcell.Key{
	"esc":    tcell.KeyEscape,
	"escape": tcell.KeyEscape,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"f1":     tcell.KeyF1,
	"f2":     tcell.KeyF2,
	"f3":     tcell.KeyF3,
	"f4":     tcell.KeyF4,
}

// Rune aliases for keys that are awkward as bare config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// ParseKey resolves a key name: a single character, an alias, a special key or ctrl+<letter>
// Returns tcell.KeyRune with the rune for character keys
func ParseKey(name string) (tcell.Key, rune, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return tcell.KeyRune, r, nil
	}
	lower := strings.ToLower(name)
	if r, ok := runeAliases[lower]; ok {
		return tcell.KeyRune, r, nil
	}
	if k, ok := specialKeyNames[lower]; ok {
		return k, 0, nil
	}
	if letter, ok := strings.CutPrefix(lower, "ctrl+"); ok && len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z' {
		return tcell.KeyCtrlA + tcell.Key(letter[0]-'a'), 0, nil
	}
	return 0, 0, fmt.Errorf("invalid key name %q", name)
}
