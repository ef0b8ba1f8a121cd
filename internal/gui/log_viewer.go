package gui

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultMaxLogMessages = 500

// logBuffer keeps the most recent log lines, newest first.
type logBuffer struct {
	mu       sync.Mutex
	messages []string
	max      int
}

func newLogBuffer(max int) *logBuffer {
	return &logBuffer{max: max}
}

// Write implements io.Writer. Each non-empty line becomes one message.
func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		b.messages = append([]string{line}, b.messages...)
	}
	if len(b.messages) > b.max {
		b.messages = b.messages[:b.max]
	}
	return len(p), nil
}

func (b *logBuffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.messages, "\n")
}

func (b *logBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}

// LogViewer shows the application's log messages in a read-only field.
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	buf *logBuffer
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{buf: newLogBuffer(defaultMaxLogMessages)}

	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(520, 260))

	v.container = container.NewBorder(
		widget.NewLabel("Log messages (newest first):"),
		nil, nil, nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Wrap returns a logger that writes to both logger and the viewer.
func (v *LogViewer) Wrap(logger *zap.Logger) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(v), zap.InfoLevel)
	return zap.New(zapcore.NewTee(logger.Core(), core))
}

// Write implements io.Writer
func (v *LogViewer) Write(p []byte) (int, error) {
	n, err := v.buf.Write(p)
	fyne.Do(v.refresh)
	return n, err
}

func (v *LogViewer) refresh() {
	v.logEntry.SetText(v.buf.Text())
	v.scrollView.Offset = fyne.NewPos(0, 0)
	v.scrollView.Refresh()
}
