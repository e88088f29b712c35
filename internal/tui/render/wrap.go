package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText 逐行换行，宽度按终端显示宽度计算。
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	lines := []string{}
	for _, raw := range strings.Split(text, "\n") {
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapLine(raw, width)...)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// wrapLine 按显示宽度换行。单词之间的空白原样保留，只有换行处的那一段
// 空白被换行符取代。
func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	var out []string
	current, currentWidth := "", 0
	gap := ""
	place := func(text string) {
		pieces := breakLongWord(text, width)
		out = append(out, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
		currentWidth = runewidth.StringWidth(current)
	}
	for _, run := range splitRuns(line) {
		if run[0] == ' ' {
			gap += run
			continue
		}
		wordWidth := runewidth.StringWidth(run)
		gapWidth := len(gap)
		switch {
		case currentWidth+gapWidth+wordWidth <= width:
			current += gap + run
			currentWidth += gapWidth + wordWidth
		case current == "":
			// 首行的前导空白属于内容本身，与单词一起折断。
			place(gap + run)
		default:
			out = append(out, current)
			place(run)
		}
		gap = ""
	}
	if gap != "" && currentWidth < width {
		current += gap[:min(len(gap), width-currentWidth)]
	}
	if current != "" || len(out) == 0 {
		out = append(out, current)
	}
	return out
}

// splitRuns 把一行拆成交替的空格段与非空格段。
func splitRuns(line string) []string {
	var runs []string
	start := 0
	for i := 1; i <= len(line); i++ {
		if i == len(line) || (line[i] == ' ') != (line[start] == ' ') {
			runs = append(runs, line[start:i])
			start = i
		}
	}
	return runs
}

func breakLongWord(word string, width int) []string {
	if width <= 0 {
		return []string{word}
	}
	out := []string{}
	var current []rune
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
			w = 0
		}
		current = append(current, r)
		w += rw
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}
