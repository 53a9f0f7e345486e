package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	color "pngscan/ansicolor"
	"pngscan/config"
	"pngscan/oops"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.ErrorStackMarshaler = oops.ZerologStackMarshaler
	log.Logger = log.Output(NewPrettyZerologWriter(os.Stderr))
	zerolog.SetGlobalLevel(config.Config.LogLevel)
}

func GlobalLogger() *zerolog.Logger {
	return &log.Logger
}

func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func Debug() *zerolog.Event {
	return log.Debug().Timestamp().Stack()
}

func Info() *zerolog.Event {
	return log.Info().Timestamp().Stack()
}

func Warn() *zerolog.Event {
	return log.Warn().Timestamp().Stack()
}

func Error() *zerolog.Event {
	return log.Error().Timestamp().Stack()
}

var levelColors = map[string]string{
	"debug": color.Gray,
	"info":  color.BgBlue,
	"warn":  color.BgYellow,
	"error": color.BgRed,
}

// PrettyZerologWriter turns zerolog's JSON lines back into something a
// person can read on a terminal. Entries with fields, errors or stacks are
// spread over several lines and fenced off from their neighbours.
type PrettyZerologWriter struct {
	out           io.Writer
	wd            string
	lastMultiline bool
}

func NewPrettyZerologWriter(out io.Writer) *PrettyZerologWriter {
	wd, _ := os.Getwd()
	return &PrettyZerologWriter{
		out: out,
		wd:  wd,
	}
}

func (w *PrettyZerologWriter) Write(p []byte) (int, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(p, &fields); err != nil {
		return w.out.Write(p)
	}

	str := func(name string) string {
		s, _ := fields[name].(string)
		delete(fields, name)
		return s
	}
	timestamp := str(zerolog.TimestampFieldName)
	level := str(zerolog.LevelFieldName)
	message := str(zerolog.MessageFieldName)
	errMessage := str(zerolog.ErrorFieldName)
	stack, _ := fields[zerolog.ErrorStackFieldName].([]interface{})
	delete(fields, zerolog.ErrorStackFieldName)

	multiline := errMessage != "" || stack != nil || len(fields) > 0

	var b strings.Builder
	if multiline || w.lastMultiline {
		b.WriteString("---------------------------------------\n")
	}
	if timestamp != "" {
		b.WriteString(timestamp + " ")
	}
	if level != "" {
		b.WriteString(levelColors[level] + color.Bold + strings.ToUpper(level) + color.Reset + ": ")
	}
	b.WriteString(message + "\n")

	if errMessage != "" {
		b.WriteString("  " + color.Bold + color.Red + "ERROR:" + color.Reset + " " + errMessage + "\n")
	}
	if len(fields) > 0 {
		b.WriteString("  " + color.Bold + color.Blue + "Fields:" + color.Reset + "\n")
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			value, _ := json.MarshalIndent(fields[name], "    ", "  ")
			fmt.Fprintf(&b, "    %s: %s\n", name, value)
		}
	}
	if stack != nil {
		b.WriteString("  " + color.Bold + color.Blue + "Stack trace:" + color.Reset + "\n")
		for _, frame := range stack {
			if line, ok := w.formatFrame(frame); ok {
				b.WriteString("    " + line + "\n")
			}
		}
	}

	w.lastMultiline = multiline

	if _, err := io.WriteString(w.out, b.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// formatFrame renders one frame as written by oops.StackFrame, with the
// working directory shortened to ".".
func (w *PrettyZerologWriter) formatFrame(frame interface{}) (string, bool) {
	frameMap, ok := frame.(map[string]interface{})
	if !ok {
		return "", false
	}
	file, _ := frameMap["file"].(string)
	function, _ := frameMap["function"].(string)
	line, _ := frameMap["line"].(float64)
	return fmt.Sprintf("%s (%s:%d)", function, strings.Replace(file, w.wd, ".", 1), int(line)), true
}

// LogPanicValue logs a value recovered from a panic. Errors that don't
// already carry a stack get the current one.
func LogPanicValue(logger *zerolog.Logger, val interface{}, msg string) {
	if logger == nil {
		logger = GlobalLogger()
	}

	if err, ok := val.(error); ok {
		l := logger.Error().Err(err)
		if _, ok := err.(*oops.Error); !ok {
			l = l.Interface(zerolog.ErrorStackFieldName, oops.Trace())
		}
		l.Msg(msg)
	} else {
		logger.Error().
			Interface("recovered", val).
			Interface(zerolog.ErrorStackFieldName, oops.Trace()).
			Msg(msg)
	}
}
