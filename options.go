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
	"io"
	"strings"
	"time"
)

// Default settings
const (
	DefaultMaxPacketSize   = 1500
	DefaultPollTimeout     = time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultLogPrefix       = "[STATSD] "
)

// ClientOptions are statsd client settings
type ClientOptions struct {
	// Addr is statsd server address in "host:port" format
	Addr string

	// MetricPrefix is metricPrefix to prepend to every metric being sent
	//
	// Prefix is normalized to end with '.' unless it is empty
	MetricPrefix string

	// ConstantTags are tags added to every metric, before call-site tags
	ConstantTags []string

	// ErrorHandler receives every error which happens in the background,
	// default handler discards errors
	ErrorHandler ErrorHandlerFunc

	// MaxPacketSize is the maximum size of UDP packet payload
	MaxPacketSize int

	// PollTimeout is the longest time sender goroutine waits for the next metric
	// before checking whether it should stop
	PollTimeout time.Duration

	// ShutdownTimeout limits the time Stop waits for pending metrics to be sent
	ShutdownTimeout time.Duration

	// Output replaces UDP socket, if set Addr is only used in error messages
	Output io.WriteCloser
}

// Option is type for option transport
type Option func(c *ClientOptions)

// MetricPrefix is prefix to prepend to every metric being sent
//
// If prefix is not empty and doesn't end with '.', dot is appended
func MetricPrefix(prefix string) Option {
	return func(c *ClientOptions) {
		c.MetricPrefix = prefix
	}
}

// ConstantTags configures tags which are sent with every metric
//
// Tags are either "key=value" or bare flags
func ConstantTags(tags ...string) Option {
	return func(c *ClientOptions) {
		c.ConstantTags = append([]string(nil), tags...)
	}
}

// ErrorHandler sets handler for errors happening during delivery and shutdown
//
// Handler is called from sender goroutine and from Stop, it should not block for long
func ErrorHandler(handler ErrorHandlerFunc) Option {
	return func(c *ClientOptions) {
		c.ErrorHandler = handler
	}
}

// MaxPacketSize control maximum UDP packet size
//
// Default value is DefaultMaxPacketSize
func MaxPacketSize(packetSize int) Option {
	return func(c *ClientOptions) {
		c.MaxPacketSize = packetSize
	}
}

// PollTimeout controls how often sender goroutine wakes up while idle
//
// Default value is DefaultPollTimeout
func PollTimeout(timeout time.Duration) Option {
	return func(c *ClientOptions) {
		c.PollTimeout = timeout
	}
}

// ShutdownTimeout controls how long Stop waits for queued metrics to be sent
//
// Default value is DefaultShutdownTimeout
func ShutdownTimeout(timeout time.Duration) Option {
	return func(c *ClientOptions) {
		c.ShutdownTimeout = timeout
	}
}

// Output sets a general io.WriteCloser as transport instead of UDP socket
//
// Every Write call is one packet
func Output(w io.WriteCloser) Option {
	return func(c *ClientOptions) {
		c.Output = w
	}
}

func normalizePrefix(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		return prefix + "."
	}

	return prefix
}
