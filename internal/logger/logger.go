// Package logger wraps a process-wide logrus logger. Every frontend logs
// through Named(component) so lines carry a [component] tag.
package logger

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger/LogEntry/Fields 暴露底层类型，调用方无需直接 import logrus。
type Logger = logrus.Logger
type LogEntry = logrus.Entry
type Fields = logrus.Fields

const componentKey = "component"

var (
	mu         sync.RWMutex
	rootLogger = logrus.StandardLogger()
)

// Configure 安装 PlainFormatter 并打开 caller 记录。
func Configure() {
	l := Root()
	l.SetReportCaller(true)
	l.SetFormatter(PlainFormatter{})
}

// SetLevel applies a level name such as "debug". An empty name is ignored;
// an unknown one is an error and leaves the level as it was.
func SetLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	Root().SetLevel(lvl)
	return nil
}

// SetupFile 把 root logger 的输出改为追加写入 path（目录按需创建），
// 返回文件 closer 与绝对路径。终端交给 TUI，日志只进文件。
func SetupFile(path string) (io.Closer, string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, "", errors.New("log path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, "", err
	}
	f, err := os.OpenFile(abs, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", err
	}
	Root().SetOutput(f)
	return f, abs, nil
}

func Root() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return rootLogger
}

// SetRoot swaps the shared logger; nil restores logrus' standard logger.
func SetRoot(l *Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	mu.Lock()
	rootLogger = l
	mu.Unlock()
}

func Entry() *LogEntry {
	return logrus.NewEntry(Root())
}

// Named 返回带 component 字段的入口。
func Named(component string) *LogEntry {
	if component == "" {
		return Entry()
	}
	return Entry().WithField(componentKey, component)
}

// Discard is the default for components built without a logger.
func Discard() *LogEntry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func Warnf(format string, args ...any) {
	Root().Warnf(format, args...)
}
