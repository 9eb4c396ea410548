/*
Package statsd implements non-blocking statsd client.

Application goroutines never wait for the network: every metric call formats
a single line and puts it onto an unbounded in-memory queue, and a single background
goroutine owned by the client delivers the lines to statsd over UDP.

Architecture is the following:

 * metric is formatted into a line "<prefix><aspect><tags>:<value>|<kind>" on the
   calling goroutine, formatting is stateless and doesn't depend on process locale
 * line is put onto the queue, queue never blocks and never rejects lines while
   client is running
 * sender goroutine drains the queue and packs lines separated with '\n' into packets
   of at most 1500 bytes (to avoid IP fragmentation)
 * packet is sent either when next line doesn't fit or as soon as queue is empty,
   so bursts of metrics are batched, but the last metric of a burst is not delayed
 * any error in the sender goroutine (socket errors, short writes, panics) is passed
   to the error handler, sender keeps running until the client is stopped

Delivery is best-effort: there are no retries, no acknowledgements and no back-pressure.

Usage

Initialize client instance with options, one client per application is usually enough:

    client, err := statsd.NewClient("localhost:8125",
        statsd.MetricPrefix("web"),
        statsd.ConstantTags("env=prod"))
    if err != nil {
        // collector address couldn't be resolved or socket couldn't be opened
    }

Send metrics as events happen in the application:

    client.Incr("requests.http", "protocol=http", "cached")
    client.Timing("requests.route.api.latency", 157)
    client.FGauge("pool.utilization", 0.75)

Stop the client during application shutdown to flush pending metrics:

    client.Stop()

Tagging

Tags are plain strings, either "key=value" or a bare flag. Constant tags configured
with ConstantTags are rendered once, call-site tags follow them. Within each group tags
are emitted in reverse order of arguments, e.g. Incr("req", "a=b", "c=d") with no constant
tags produces "req,c=d,a=b:1|c"; existing collectors rely on this order.
*/
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

import "time"

// Statter is the set of recording operations supported by the client
//
// All the methods are safe for concurrent use, never block and never panic
type Statter interface {
	Count(aspect string, delta int64, tags ...string)
	Incr(aspect string, tags ...string)
	Decr(aspect string, tags ...string)
	Gauge(aspect string, value int64, tags ...string)
	FGauge(aspect string, value float64, tags ...string)
	Timing(aspect string, timeInMs int64, tags ...string)
	TimingDuration(aspect string, delta time.Duration, tags ...string)
	Histogram(aspect string, value int64, tags ...string)
	FHistogram(aspect string, value float64, tags ...string)
	Stop()
}

var (
	_ Statter = (*Client)(nil)
	_ Statter = NoopClient{}
)
