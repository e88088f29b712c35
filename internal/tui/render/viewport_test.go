package render

import "testing"

func TestViewportSetLinesKeepsBottom(t *testing.T) {
	vp := NewViewport(10, 2)
	vp.SetLines([]string{"a", "b"})
	vp.GotoBottom()

	vp.SetLines([]string{"a", "b", "c"})
	if !vp.AtBottom() {
		t.Fatalf("viewport should stay anchored at bottom after append")
	}
	if vp.YOffset != 1 {
		t.Fatalf("YOffset = %d, want 1", vp.YOffset)
	}
}

func TestViewportSetLinesLeavesScrolledBackPosition(t *testing.T) {
	vp := NewViewport(10, 2)
	vp.SetLines([]string{"a", "b", "c", "d"})
	vp.SetYOffset(0)

	vp.SetLines([]string{"a", "b", "c", "d", "e"})
	if vp.YOffset != 0 {
		t.Fatalf("reader scrolled back; YOffset = %d, want 0", vp.YOffset)
	}
}

func TestViewportScroll(t *testing.T) {
	t.Run("page down moves offset", func(t *testing.T) {
		vp := NewViewport(8, 2)
		vp.SetLines([]string{"a", "b", "c", "d", "e"})
		vp.SetYOffset(0)

		vp.ScrollPageDown()
		if vp.YOffset != 2 {
			t.Fatalf("unexpected YOffset after page down: %d", vp.YOffset)
		}
		vp.ScrollPageUp()
		if vp.YOffset != 0 {
			t.Fatalf("unexpected YOffset after page up: %d", vp.YOffset)
		}
	})

	t.Run("ignore extra scroll when at bottom", func(t *testing.T) {
		vp := NewViewport(8, 2)
		vp.SetLines([]string{"a", "b"})
		vp.GotoBottom()

		vp.ScrollDown(1)
		if !vp.AtBottom() {
			t.Fatalf("viewport should stay at bottom")
		}
	})
}
