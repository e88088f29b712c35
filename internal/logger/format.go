package logger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PlainFormatter writes one line per entry:
//
//	caller [time] [LEVEL] [component] message k=v ...
type PlainFormatter struct {
	// TimeLayout defaults to time.RFC3339Nano; times are always UTC.
	TimeLayout string
}

func (f PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return nil, nil
	}
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	layout := f.TimeLayout
	if layout == "" {
		layout = time.RFC3339Nano
	}

	if caller := callerOf(entry); caller != "" {
		b.WriteString(caller)
		b.WriteByte(' ')
	}
	fmt.Fprintf(b, "[%s] [%s]", entry.Time.UTC().Format(layout), strings.ToUpper(entry.Level.String()))
	if component, _ := entry.Data[componentKey].(string); component != "" {
		fmt.Fprintf(b, " [%s]", component)
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	for _, key := range fieldKeys(entry.Data) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(entry.Data[key]))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// callerOf prefers the runtime caller; entries built by hand may carry a
// preformatted "caller" field instead.
func callerOf(entry *logrus.Entry) string {
	if entry.HasCaller() {
		return fmt.Sprintf("%s:%d", trimSourcePath(entry.Caller.File), entry.Caller.Line)
	}
	caller, _ := entry.Data["caller"].(string)
	return caller
}

func fieldKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != componentKey && k != "caller" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// formatValue quotes values that would otherwise break k=v parsing.
func formatValue(v any) string {
	text := fmt.Sprint(v)
	if text == "" || strings.ContainsAny(text, " \t\n\"=") {
		return strconv.Quote(text)
	}
	return text
}

// trimSourcePath keeps the path from the first package root onwards, e.g.
// internal/web/server.go.
func trimSourcePath(file string) string {
	file = filepath.ToSlash(file)
	for _, root := range []string{"/internal/", "/cmd/"} {
		if idx := strings.Index(file, root); idx != -1 {
			return file[idx+1:]
		}
	}
	return filepath.Base(file)
}
