package input

import "github.com/Carmen-Shannon/oxy-orrery/common"

// Movement identifies a held movement key.
type Movement int

const (
	MoveForward Movement = iota + 1
	MoveBackward
	MoveLeft
	MoveRight
	MoveSprint
)

// KeyMap binds key codes to held movements and to one-shot commands.
type KeyMap struct {
	Movement map[uint32]Movement
	Commands map[uint32]CommandKind
}

// DefaultKeyMap returns the standard bindings: WASD to walk, Shift to sprint, Tab to toggle walking, R to cycle
// bodies, P to pause, brackets for body size, minus/equal for time scale and comma/period for orbit distances.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Movement: map[uint32]Movement{
			common.KeyW:          MoveForward,
			common.KeyS:          MoveBackward,
			common.KeyA:          MoveLeft,
			common.KeyD:          MoveRight,
			common.KeyLeftShift:  MoveSprint,
			common.KeyRightShift: MoveSprint,
		},
		Commands: map[uint32]CommandKind{
			common.KeyTab:          CommandToggleWalking,
			common.KeyR:            CommandCycleBody,
			common.KeyP:            CommandTogglePause,
			common.KeyRightBracket: CommandSizeUp,
			common.KeyLeftBracket:  CommandSizeDown,
			common.KeyEqual:        CommandTimeUp,
			common.KeyMinus:        CommandTimeDown,
			common.KeyPeriod:       CommandDistanceUp,
			common.KeyComma:        CommandDistanceDown,
		},
	}
}
