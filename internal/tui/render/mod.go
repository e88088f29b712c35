package render

// Rect 表示矩形区域。
type Rect struct {
	X, Y          int
	Width, Height int
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
