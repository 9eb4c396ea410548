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
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"
)

// Client implements statsd client
type Client struct {
	options ClientOptions
	format  formatter
	sender  *sender
}

// NewClient creates new statsd client and starts background processing
//
// Client sends metrics to statsd server at addr ("host:port") over UDP.
// Error is returned if the address can't be resolved or socket can't be opened,
// after that no error is ever returned to the caller.
//
// Client settings could be controlled via functions of type Option
func NewClient(addr string, options ...Option) (*Client, error) {
	opts := ClientOptions{
		Addr:            addr,
		ErrorHandler:    DiscardErrors,
		MaxPacketSize:   DefaultMaxPacketSize,
		PollTimeout:     DefaultPollTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	for _, option := range options {
		option(&opts)
	}

	if opts.ErrorHandler == nil {
		opts.ErrorHandler = DiscardErrors
	}

	if opts.MaxPacketSize <= 0 {
		opts.MaxPacketSize = DefaultMaxPacketSize
	}

	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}

	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	out := opts.Output
	if out == nil {
		var err error

		out, err = dial(addr)
		if err != nil {
			return nil, err
		}
	}

	c := &Client{
		options: opts,
		format:  newFormatter(opts.MetricPrefix, opts.ConstantTags),
		sender:  newSender(&opts, out),
	}

	go c.sender.sendLoop()

	return c, nil
}

func dial(addr string) (io.WriteCloser, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("statsd: error resolving %q: %w", addr, err)
	}

	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("statsd: error opening socket to %s: %w", addr, err)
	}

	return conn, nil
}

// CloneWithPrefix returns a clone of the original client with different metricPrefix.
//
// Clone shares the queue and the socket with the original client, so stopping
// any of them stops all of them.
func (c *Client) CloneWithPrefix(prefix string) *Client {
	clone := *c
	clone.options.MetricPrefix = prefix
	clone.format = newFormatter(prefix, c.options.ConstantTags)

	return &clone
}

// CloneWithPrefixExtension returns a clone of the original client with the
// original prefix extended with the specified string.
func (c *Client) CloneWithPrefixExtension(extension string) *Client {
	return c.CloneWithPrefix(c.format.prefix + extension)
}

// Stop flushes queued metrics and closes the socket
//
// Stop waits up to ShutdownTimeout, errors are passed to the error handler.
// Metrics sent after Stop are dropped. Stop is safe to call several times.
func (c *Client) Stop() {
	c.sender.stop()
}

// Close stops the client, it always returns nil
func (c *Client) Close() error {
	c.Stop()

	return nil
}

// State returns current state of the sender goroutine
func (c *Client) State() State {
	return c.sender.currentState()
}

// GetLostPackets returns number of packets which failed to be sent during client lifecycle
func (c *Client) GetLostPackets() int64 {
	return atomic.LoadInt64(&c.sender.lostPackets)
}

// GetDroppedLines returns number of metrics dropped because client was stopped
func (c *Client) GetDroppedLines() int64 {
	return atomic.LoadInt64(&c.sender.droppedLines)
}

// Count adjusts a counter metric by delta, delta might be negative
func (c *Client) Count(aspect string, delta int64, tags ...string) {
	c.sender.enqueue(c.format.intLine(aspect, delta, kindCounter, tags))
}

// Incr increments a counter metric by one
//
// Often used to note a particular event
func (c *Client) Incr(aspect string, tags ...string) {
	c.Count(aspect, 1, tags...)
}

// Increment is an alias for Incr
func (c *Client) Increment(aspect string, tags ...string) {
	c.Count(aspect, 1, tags...)
}

// Decr decrements a counter metric by one
func (c *Client) Decr(aspect string, tags ...string) {
	c.Count(aspect, -1, tags...)
}

// Decrement is an alias for Decr
func (c *Client) Decrement(aspect string, tags ...string) {
	c.Count(aspect, -1, tags...)
}

// Gauge records the latest integer value of the gauge
func (c *Client) Gauge(aspect string, value int64, tags ...string) {
	c.sender.enqueue(c.format.intLine(aspect, value, kindGauge, tags))
}

// FGauge records the latest floating point value of the gauge
//
// Value is sent with at most 6 fractional digits, NaN is sent as "NaN"
func (c *Client) FGauge(aspect string, value float64, tags ...string) {
	c.sender.enqueue(c.format.floatLine(aspect, value, kindGauge, tags))
}

// Timing tracks a duration event, the time delta must be given in milliseconds
func (c *Client) Timing(aspect string, timeInMs int64, tags ...string) {
	c.sender.enqueue(c.format.intLine(aspect, timeInMs, kindTiming, tags))
}

// TimingDuration tracks a duration event, duration is truncated to whole milliseconds
func (c *Client) TimingDuration(aspect string, delta time.Duration, tags ...string) {
	c.Timing(aspect, int64(delta/time.Millisecond), tags...)
}

// Histogram records integer value to be tracked as a distribution
func (c *Client) Histogram(aspect string, value int64, tags ...string) {
	c.sender.enqueue(c.format.intLine(aspect, value, kindHistogram, tags))
}

// FHistogram records floating point value to be tracked as a distribution
func (c *Client) FHistogram(aspect string, value float64, tags ...string) {
	c.sender.enqueue(c.format.floatLine(aspect, value, kindHistogram, tags))
}
