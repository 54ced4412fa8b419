package window

import "testing"

func TestOptionsAndSizeClamp(t *testing.T) {
	tests := []struct {
		name          string
		options       []WindowBuilderOption
		width, height int
	}{
		{"defaults", nil, 1280, 720},
		{"requested", []WindowBuilderOption{WithSize(1024, 768)}, 1024, 768},
		{"non-positive keeps default", []WindowBuilderOption{WithSize(0, -1)}, 1280, 720},
		{"clamped to max", []WindowBuilderOption{WithSize(4000, 3000)}, 1600, 1200},
		{"clamped to min", []WindowBuilderOption{WithSize(100, 100)}, 600, 200},
		{"unlimited", []WindowBuilderOption{WithSizeLimits(0, 0, 0, 0), WithSize(4000, 10)}, 4000, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEngineWindow(tt.options...)
			if w.width != tt.width || w.height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", w.width, w.height, tt.width, tt.height)
			}
		})
	}
}

func TestSetTitleIsQueued(t *testing.T) {
	w := newEngineWindow(WithTitle("first"))
	if w.title != "first" {
		t.Fatalf("title = %q, want first", w.title)
	}
	w.SetTitle("second")
	w.SetTitle("third")
	if w.pendingTitle == nil || *w.pendingTitle != "third" {
		t.Errorf("pending title = %v, want third", w.pendingTitle)
	}
	if w.title != "first" {
		t.Errorf("title changed before the message loop ran: %q", w.title)
	}
}
