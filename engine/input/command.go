package input

// CommandKind identifies a discrete user command.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandToggleWalking
	CommandCycleBody
	CommandTogglePause
	CommandSizeUp
	CommandSizeDown
	CommandTimeUp
	CommandTimeDown
	CommandDistanceUp
	CommandDistanceDown
	// CommandPick asks for the body under the cursor; X and Y carry the cursor position.
	CommandPick
)

var commandNames = map[CommandKind]string{
	CommandNone:          "none",
	CommandToggleWalking: "toggle-walking",
	CommandCycleBody:     "cycle-body",
	CommandTogglePause:   "toggle-pause",
	CommandSizeUp:        "size-up",
	CommandSizeDown:      "size-down",
	CommandTimeUp:        "time-up",
	CommandTimeDown:      "time-down",
	CommandDistanceUp:    "distance-up",
	CommandDistanceDown:  "distance-down",
	CommandPick:          "pick",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a discrete input event queued for the next simulation tick.
type Command struct {
	Kind CommandKind
	X, Y float32
}
