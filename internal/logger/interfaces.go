package logger

import "io"

// Logger is the leveled logger every component receives from main.
// GetWriter exposes the raw sink so subprocess and third-party output lands in the same stream.
type Logger interface {
	Info(message string, v ...interface{})
	Warn(message string, v ...interface{})
	Error(message string, v ...interface{})
	Debug(message string, v ...interface{})
	GetWriter() io.Writer
}
