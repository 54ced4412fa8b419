package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/walker"
)

func TestManager_Movement(t *testing.T) {
	m := NewManager()
	m.KeyDown(common.KeyW)
	m.KeyDown(common.KeyD)
	m.KeyDown(common.KeyLeftShift)

	want := walker.MovementIntent{Forward: true, Right: true, Sprint: true}
	if got := m.Movement(); got != want {
		t.Fatalf("Movement() = %+v, want %+v", got, want)
	}

	m.KeyUp(common.KeyD)
	m.KeyUp(common.KeyLeftShift)
	want = walker.MovementIntent{Forward: true}
	if got := m.Movement(); got != want {
		t.Errorf("Movement() after release = %+v, want %+v", got, want)
	}
}

func TestManager_CommandsIgnoreRepeats(t *testing.T) {
	m := NewManager()
	m.KeyDown(common.KeyTab)
	m.KeyDown(common.KeyTab) // repeat
	m.KeyDown(common.KeyR)
	m.KeyUp(common.KeyTab)
	m.KeyDown(common.KeyTab)
	m.KeyDown(common.KeyW) // movement only

	got := m.DrainCommands()
	want := []CommandKind{CommandToggleWalking, CommandCycleBody, CommandToggleWalking}
	if len(got) != len(want) {
		t.Fatalf("DrainCommands() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Kind != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i].Kind, want[i])
		}
	}
	if rest := m.DrainCommands(); rest != nil {
		t.Errorf("second DrainCommands() = %v, want nil", rest)
	}
}

func TestManager_DefaultCommandBindings(t *testing.T) {
	for _, tc := range []struct {
		key  uint32
		want CommandKind
	}{
		{common.KeyP, CommandTogglePause},
		{common.KeyRightBracket, CommandSizeUp},
		{common.KeyLeftBracket, CommandSizeDown},
		{common.KeyEqual, CommandTimeUp},
		{common.KeyMinus, CommandTimeDown},
		{common.KeyPeriod, CommandDistanceUp},
		{common.KeyComma, CommandDistanceDown},
	} {
		t.Run(tc.want.String(), func(t *testing.T) {
			m := NewManager()
			m.KeyDown(tc.key)
			cmds := m.DrainCommands()
			if len(cmds) != 1 || cmds[0].Kind != tc.want {
				t.Errorf("key %d queued %v, want %v", tc.key, cmds, tc.want)
			}
		})
	}
}

func TestManager_DragAccumulatesAndConsumes(t *testing.T) {
	m := NewManager()

	// moving without a press produces no look
	m.MouseMove(10, 10)
	m.MouseMove(20, 30)
	if dx, dy := m.ConsumeLook(); dx != 0 || dy != 0 {
		t.Fatalf("ConsumeLook() without drag = %v, %v", dx, dy)
	}

	m.MouseDown(common.MouseButtonLeft, 20, 30)
	m.MouseMove(25, 28)
	m.MouseMove(40, 20)
	if dx, dy := m.ConsumeLook(); dx != 20 || dy != -10 {
		t.Errorf("ConsumeLook() = %v, %v, want 20, -10", dx, dy)
	}
	if dx, dy := m.ConsumeLook(); dx != 0 || dy != 0 {
		t.Errorf("ConsumeLook() not zeroed: %v, %v", dx, dy)
	}

	m.MouseUp(common.MouseButtonLeft, 40, 20)
	if cmds := m.DrainCommands(); len(cmds) != 0 {
		t.Errorf("drag queued %v", cmds)
	}
}

func TestManager_ClickQueuesPick(t *testing.T) {
	for _, tc := range []struct {
		name     string
		upX, upY int32
		want     bool
	}{
		{"still", 100, 100, true},
		{"small jitter", 103, 103, true},
		{"at threshold", 105, 100, false},
		{"drag", 150, 100, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager()
			m.MouseDown(common.MouseButtonLeft, 100, 100)
			m.MouseUp(common.MouseButtonLeft, tc.upX, tc.upY)

			cmds := m.DrainCommands()
			if got := len(cmds) == 1 && cmds[0].Kind == CommandPick; got != tc.want {
				t.Fatalf("pick queued = %v, want %v (%v)", got, tc.want, cmds)
			}
			if tc.want && (cmds[0].X != float32(tc.upX) || cmds[0].Y != float32(tc.upY)) {
				t.Errorf("pick position = %v, %v", cmds[0].X, cmds[0].Y)
			}
		})
	}
}

func TestManager_OtherButtonsIgnored(t *testing.T) {
	m := NewManager()
	m.MouseDown(common.MouseButtonRight, 0, 0)
	m.MouseMove(50, 50)
	m.MouseUp(common.MouseButtonRight, 50, 50)

	if dx, dy := m.ConsumeLook(); dx != 0 || dy != 0 {
		t.Errorf("right drag produced look %v, %v", dx, dy)
	}
	if cmds := m.DrainCommands(); len(cmds) != 0 {
		t.Errorf("right click queued %v", cmds)
	}
}

func TestManager_CustomBindings(t *testing.T) {
	m := NewManager(
		WithKeyMap(KeyMap{
			Movement: map[uint32]Movement{common.KeySpace: MoveForward},
			Commands: map[uint32]CommandKind{common.KeyEsc: CommandTogglePause},
		}),
		WithLookButton(common.MouseButtonMiddle),
		WithClickThreshold(20),
	)

	m.KeyDown(common.KeySpace)
	m.KeyDown(common.KeyW)
	if got := m.Movement(); got != (walker.MovementIntent{Forward: true}) {
		t.Errorf("Movement() = %+v", got)
	}

	m.MouseDown(common.MouseButtonMiddle, 0, 0)
	m.MouseUp(common.MouseButtonMiddle, 12, 0)
	m.KeyDown(common.KeyEsc)
	cmds := m.DrainCommands()
	if len(cmds) != 2 || cmds[0].Kind != CommandPick || cmds[1].Kind != CommandTogglePause {
		t.Errorf("DrainCommands() = %v", cmds)
	}
}

func TestManager_ScrollAccumulates(t *testing.T) {
	m := NewManager()
	m.Scroll(1)
	m.Scroll(0.5)
	m.Scroll(-2)
	if got := m.ConsumeScroll(); got != -0.5 {
		t.Errorf("ConsumeScroll() = %v, want -0.5", got)
	}
	if got := m.ConsumeScroll(); got != 0 {
		t.Errorf("ConsumeScroll() not zeroed: %v", got)
	}
}
