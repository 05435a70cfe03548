// Package logger provides the leveled, colorized logging used throughout
// the hlssource packages.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gookit/color"
)

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

// Writer is implemented by anything that can receive log lines.
type Writer interface {
	Log(level Level, format string, args ...interface{})
}

// Logger writes leveled log lines to an io.Writer.
type Logger struct {
	level Level
	out   io.Writer
	color bool

	mutex sync.Mutex
	buf   bytes.Buffer
}

// New allocates a Logger that writes to out at or above level.
// If out is nil, os.Stdout is used and lines are colorized.
func New(level Level, out io.Writer) *Logger {
	l := &Logger{level: level, out: out}
	if out == nil {
		l.out = os.Stdout
		l.color = true
	}
	return l
}

// https://golang.org/src/log/log.go#L78
func itoa(i int, wid int) []byte {
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	b[bp] = byte('0' + i)
	return b[bp:]
}

func writeTime(buf *bytes.Buffer, doColor bool) {
	var intbuf bytes.Buffer

	now := time.Now()
	year, month, day := now.Date()
	intbuf.Write(itoa(year, 4))
	intbuf.WriteByte('/')
	intbuf.Write(itoa(int(month), 2))
	intbuf.WriteByte('/')
	intbuf.Write(itoa(day, 2))
	intbuf.WriteByte(' ')

	hour, min, sec := now.Clock()
	intbuf.Write(itoa(hour, 2))
	intbuf.WriteByte(':')
	intbuf.Write(itoa(min, 2))
	intbuf.WriteByte(':')
	intbuf.Write(itoa(sec, 2))
	intbuf.WriteByte(' ')

	if doColor {
		buf.WriteString(color.RenderString(color.Gray.Code(), intbuf.String()))
	} else {
		buf.WriteString(intbuf.String())
	}
}

func writeLevel(buf *bytes.Buffer, level Level, doColor bool) {
	switch level {
	case Debug:
		if doColor {
			buf.WriteString(color.RenderString(color.Debug.Code(), "DEB"))
		} else {
			buf.WriteString("DEB")
		}

	case Info:
		if doColor {
			buf.WriteString(color.RenderString(color.Green.Code(), "INF"))
		} else {
			buf.WriteString("INF")
		}

	case Warn:
		if doColor {
			buf.WriteString(color.RenderString(color.Warn.Code(), "WAR"))
		} else {
			buf.WriteString("WAR")
		}

	case Error:
		if doColor {
			buf.WriteString(color.RenderString(color.Error.Code(), "ERR"))
		} else {
			buf.WriteString("ERR")
		}
	}
	buf.WriteByte(' ')
}

// Log writes a log entry. It is safe for concurrent use, since the event
// listener and the loader's background worker both log through it.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.buf.Reset()
	writeTime(&l.buf, l.color)
	writeLevel(&l.buf, level, l.color)
	fmt.Fprintf(&l.buf, format, args...)
	l.buf.WriteByte('\n')
	l.out.Write(l.buf.Bytes())
}
