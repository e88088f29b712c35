package tui

import (
	"errors"

	"adventure/internal/transcript"

	tea "github.com/charmbracelet/bubbletea"
)

// Result 返回 TUI 运行后的必要信息。
type Result struct {
	Entries []transcript.Entry
}

// Run 封装 Bubble Tea 入口，返回最终的 transcript。
func Run(opts Options, programOptions ...tea.ProgramOption) (Result, error) {
	if !opts.CopyableOutput {
		programOptions = append(programOptions, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(New(opts), programOptions...)
	m, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	tuiModel, ok := m.(*Model)
	if !ok {
		return Result{}, errors.New("unexpected tui model")
	}
	return Result{Entries: tuiModel.Entries()}, nil
}
