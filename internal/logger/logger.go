package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// locationFormatter renders entry timestamps in a fixed location before
// delegating to the wrapped formatter.
type locationFormatter struct {
	next logrus.Formatter
	loc  *time.Location
}

func (f *locationFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.next.Format(e)
}

// New returns a logger that writes one JSON object per line to w.
// Every line carries "ts", "level" and "msg".
func New(w io.Writer, loc *time.Location) *logrus.Logger {
	if loc == nil {
		loc = time.UTC
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&locationFormatter{
		next: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		},
		loc: loc,
	})
	return l
}

// SetLevel applies a textual level such as "debug" or "warn".
// Unknown values leave the current level untouched.
func SetLevel(l *logrus.Logger, level string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
}
