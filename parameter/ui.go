package parameter

// Terminal layout
const (
	// CellAspect is terminal cell width over height, used for aspect correction
	CellAspect = 0.5

	// StatusBarRows is reserved at the bottom for the status bar
	StatusBarRows = 1

	// LeaderboardRows caps the flocks listed in the leaderboard
	LeaderboardRows = 6
	// LeaderboardWidth is the leaderboard panel width in cells
	LeaderboardWidth = 18

	// DenseCellCount is the agents per cell at which the dense glyph is drawn
	DenseCellCount = 4

	// DimFactor scales agent colors once the game is decided
	DimFactor = 0.5
)

// UI Symbols
const (
	AudioStr    = "♫ "
	AudioMuted  = "muted "
	PausedStr   = " PAUSED "
	VictoryText = " VICTORY  press r to play again "
	DefeatText  = " DEFEATED  press r to restart "
	KeyHint     = "p pause  r restart  m mute  q quit"
)

// Simulation color themes
const (
	PalettePlumTree  = "plumTree"
	PaletteJeans     = "jeans"
	PaletteGreyscale = "greyscale"
	PaletteHotCold   = "hotcold"

	DefaultPalette = PalettePlumTree
)
