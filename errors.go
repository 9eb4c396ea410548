package statsd

/*

Copyright (c) 2017 Andrey Smirnov

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrShutdownTimeout is reported when queued metrics weren't sent within ShutdownTimeout
var ErrShutdownTimeout = errors.New("timed out waiting for queued metrics to be sent")

// SendError is reported when packet was only partially written
type SendError struct {
	Addr  string
	Sent  int
	Total int
}

func (e *SendError) Error() string {
	return fmt.Sprintf("could not send packet to %s: only sent %d bytes out of %d bytes", e.Addr, e.Sent, e.Total)
}

// PanicError wraps value recovered from panic in the sender goroutine
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}

// ErrorHandlerFunc receives errors which can't be returned to the caller
//
// Handler might be called concurrently from the sender goroutine and from Stop
type ErrorHandlerFunc func(err error)

// DiscardErrors is the default error handler, it ignores all the errors
func DiscardErrors(error) {}

// Logger is interface of logger used by LoggerErrorHandler, *log.Logger implements it
type Logger interface {
	Printf(format string, v ...interface{})
}

// LoggerErrorHandler writes every error to logger
func LoggerErrorHandler(logger Logger) ErrorHandlerFunc {
	return func(err error) {
		logger.Printf(DefaultLogPrefix+"%s", err)
	}
}

// ZapErrorHandler logs every error as a warning with structured fields
func ZapErrorHandler(logger *zap.Logger) ErrorHandlerFunc {
	logger = logger.With(zap.String("component", "statsd"))

	return func(err error) {
		fields := []zap.Field{zap.Error(err)}

		var sendErr *SendError
		if errors.As(err, &sendErr) {
			fields = append(fields,
				zap.String("addr", sendErr.Addr),
				zap.Int("sent", sendErr.Sent),
				zap.Int("total", sendErr.Total))
		}

		logger.Warn("metrics delivery failed", fields...)
	}
}
