package input

// IntentType identifies a parsed user action
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentQuit
	IntentPause
	IntentRestart
	IntentToggleMute
	IntentNextPalette
	IntentNextPreset
	IntentResize
	IntentPointer
)

// actionNames maps canonical action names to intents, used by key rebinding
// "none" unbinds a key
var actionNames = map[string]IntentType{
	"none":         IntentNone,
	"quit":         IntentQuit,
	"pause":        IntentPause,
	"restart":      IntentRestart,
	"toggle_mute":  IntentToggleMute,
	"next_palette": IntentNextPalette,
	"next_preset":  IntentNextPreset,
}

func (t IntentType) String() string {
	switch t {
	case IntentResize:
		return "resize"
	case IntentPointer:
		return "pointer"
	}
	for name, it := range actionNames {
		if it == t {
			return name
		}
	}
	return "unknown"
}

// ParseAction resolves an action name to its intent
func ParseAction(name string) (IntentType, bool) {
	t, ok := actionNames[name]
	return t, ok
}

// Intent is a parsed user action
// Pure data, consumers decide what to do with it
type Intent struct {
	Type IntentType

	// Pointer intents only: cell position and button state
	X, Y int
	Held bool
}
