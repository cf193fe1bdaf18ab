package logsvc

import (
	"log"
	"os"

	"github.com/jogaaurora/aurora/core"
)

// ConsoleLogger writes to a std logger. Debug output is dropped unless debug is on.
type ConsoleLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger, debug bool) *ConsoleLogger {
	if std == nil {
		std = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &ConsoleLogger{std: std, debug: debug}
}

func (l *ConsoleLogger) IsDebug() bool { return l.debug }

func (l *ConsoleLogger) print(level, msg string, args []interface{}) {
	l.std.Println(level + " " + msg)
	for _, arg := range args {
		l.std.Printf("  %+v\n", arg)
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		l.print("DEBUG", msg, args)
	}
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.print("WARN", msg, args)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR", msg, args)
}

func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}

// New picks the RollbarLogger when a token is configured, the ConsoleLogger otherwise.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken != "" {
		l := NewRollbarLogger(std, conf)
		l.Enable(!conf.TestMode)
		return l
	}
	return NewConsoleLogger(std, conf.Debug)
}
