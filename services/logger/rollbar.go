package logsvc

import (
	"fmt"
	"io"
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/springreviewer/admin/core"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Address)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// NewLoggerMock returns a logger that neither prints nor reports.
func NewLoggerMock() *RollbarLogger {
	rollbar.SetEnabled(false)
	return &RollbarLogger{std: log.New(io.Discard, "", 0)}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// prepare turns args into rollbar args: the first core.Operator becomes the rollbar person
// and its request id is merged into the custom data map.
// expected fmt: msg | error, map[string]interface{}, core.Operator
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	op, opSet := operator(args)
	if opSet && op.Username != "" {
		rollbar.SetPerson(op.Username, op.Username, "")
	} else {
		rollbar.ClearPerson()
	}

	newArgs := make([]interface{}, 0, len(args)+2)
	newArgs = append(newArgs, msg)
	var custom map[string]interface{}
	for _, arg := range args {
		switch a := arg.(type) {
		case core.Operator:
		case map[string]interface{}:
			if custom == nil {
				custom = make(map[string]interface{}, len(a)+1)
			}
			for k, v := range a {
				custom[k] = v
			}
		default:
			newArgs = append(newArgs, arg)
		}
	}
	if opSet && op.RequestID != "" {
		if custom == nil {
			custom = make(map[string]interface{}, 1)
		}
		custom[requestIDKey] = op.RequestID
	}
	if custom != nil {
		newArgs = append(newArgs, custom)
	}
	return newArgs
}

const requestIDKey = "requestId"

func operator(args []interface{}) (core.Operator, bool) {
	for _, arg := range args {
		if op, ok := arg.(core.Operator); ok {
			return op, true
		}
	}
	return core.Operator{}, false
}

func (l RollbarLogger) print(msg string, args []interface{}) {
	if op, ok := operator(args); ok && (op.Username != "" || op.RequestID != "") {
		msg = fmt.Sprintf("[%s %s] %s", op.RequestID, op.Username, msg)
	}
	l.std.Println(msg)
	for _, arg := range args {
		if _, ok := arg.(core.Operator); ok {
			continue
		}
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.print(msg, args)
	l.std.Fatal(msg)
}
