// Package log is a wrapper of logrus with contextual key-value pairs.
package log

import (
	"fmt"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// JSONFormat print log in json format
var JSONFormat bool

var logger = logrus.New()

func init() {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})
}

// SetLogger set log level, format etc.
func SetLogger(logLevel uint32, jsonFormat, colorFormat bool) {
	logger.SetLevel(logrus.Level(logLevel))
	JSONFormat = jsonFormat
	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000",
			ForceColors:     colorFormat,
			DisableColors:   !colorFormat,
		})
	}
}

// SetLogFile set log file path and rotation
func SetLogFile(logFile string, logRotation, logMaxAge uint64) {
	if logFile == "" {
		return
	}
	logFileAbs, err := filepath.Abs(logFile)
	if err != nil {
		logger.Fatalf("wrong log file path '%v'", logFile)
	}
	writer, err := rotatelogs.New(
		logFileAbs+".%Y%m%d%H",
		rotatelogs.WithLinkName(logFileAbs),
		rotatelogs.WithRotationTime(time.Duration(logRotation)*time.Hour),
		rotatelogs.WithMaxAge(time.Duration(logMaxAge)*time.Hour),
	)
	if err != nil {
		logger.Fatalf("create rotate logs for file '%v' failed. %v", logFile, err)
	}
	logger.SetOutput(writer)
}

// GetLogLevel get log level
func GetLogLevel() uint32 {
	return uint32(logger.GetLevel())
}

// WithFields parse alternating key-value pairs to logrus fields
func WithFields(ctx ...interface{}) *logrus.Entry {
	length := len(ctx)
	fields := make(logrus.Fields, length/2+1)
	for k := 0; k+1 < length; k += 2 {
		key, ok := ctx[k].(string)
		if !ok {
			key = fmt.Sprintf("!%v", ctx[k])
		}
		fields[key] = ctx[k+1]
	}
	if length%2 != 0 {
		fields["!EXTRA"] = ctx[length-1]
	}
	return logger.WithFields(fields)
}

// PrintFunc print function prototype
type PrintFunc func(msg string, ctx ...interface{})

// GetPrintFuncOr get print function by condition
func GetPrintFuncOr(predicate func() bool, targetFunc, otherFunc PrintFunc) PrintFunc {
	if predicate() {
		return targetFunc
	}
	return otherFunc
}

// Trace trace
func Trace(msg string, ctx ...interface{}) {
	WithFields(ctx...).Trace(msg)
}

// Tracef tracef
func Tracef(format string, args ...interface{}) {
	logger.Tracef(format, args...)
}

// Debug debug
func Debug(msg string, ctx ...interface{}) {
	WithFields(ctx...).Debug(msg)
}

// Debugf debugf
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Info info
func Info(msg string, ctx ...interface{}) {
	WithFields(ctx...).Info(msg)
}

// Infof infof
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warn warn
func Warn(msg string, ctx ...interface{}) {
	WithFields(ctx...).Warn(msg)
}

// Warnf warnf
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error error
func Error(msg string, ctx ...interface{}) {
	WithFields(ctx...).Error(msg)
}

// Errorf errorf
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Fatal fatal
func Fatal(msg string, ctx ...interface{}) {
	WithFields(ctx...).Fatal(msg)
}

// Fatalf fatalf
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

// Println println
func Println(msg ...interface{}) {
	logger.Println(msg...)
}

// Printf printf
func Printf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}
