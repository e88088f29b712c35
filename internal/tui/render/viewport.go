package render

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Viewport 包装 bubbles viewport，提供 diff 感知与贴底滚动。
type Viewport struct {
	viewport.Model
	lastLines []string
}

// NewViewport 创建视口；Bubble Tea v1 推荐默认渲染器，因此不启用高性能渲染。
func NewViewport(width, height int) Viewport {
	vp := viewport.New(width, height)
	return Viewport{Model: vp}
}

// Resize 更新宽高，宽度变化时丢弃缓存行。
func (v *Viewport) Resize(width, height int) {
	if v == nil {
		return
	}
	widthChanged := v.Width != width
	v.Width = width
	v.Height = height
	if widthChanged {
		v.Invalidate()
	}
}

// HandleUpdate 代理 bubbles 的 Update，保持内部状态。
func (v *Viewport) HandleUpdate(msg tea.Msg) tea.Cmd {
	if v == nil {
		return nil
	}
	var cmd tea.Cmd
	v.Model, cmd = v.Model.Update(msg)
	return cmd
}

// SetLines 更新内容；内容未变化时不做任何事。原本贴底的视口保持贴底。
func (v *Viewport) SetLines(lines []string) {
	if v == nil {
		return
	}
	if v.lastLines != nil && slices.Equal(lines, v.lastLines) {
		return
	}
	stickToBottom := v.AtBottom()
	v.lastLines = append([]string{}, lines...)

	v.SetContent(strings.Join(lines, "\n"))
	if stickToBottom {
		v.GotoBottom()
	}
}

// ScrollPageDown 下翻一页。
func (v *Viewport) ScrollPageDown() {
	if v == nil {
		return
	}
	v.PageDown()
}

// ScrollPageUp 上翻一页。
func (v *Viewport) ScrollPageUp() {
	if v == nil {
		return
	}
	v.PageUp()
}

// Invalidate 清空已缓存的行，强制下次 SetLines 全量刷新。
func (v *Viewport) Invalidate() {
	if v == nil {
		return
	}
	v.lastLines = nil
}
