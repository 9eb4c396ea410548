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

// NoopClient implements Statter and discards all the metrics
//
// NoopClient is useful when metrics are disabled or in tests
type NoopClient struct{}

// Count does nothing
func (NoopClient) Count(string, int64, ...string) {}

// Incr does nothing
func (NoopClient) Incr(string, ...string) {}

// Decr does nothing
func (NoopClient) Decr(string, ...string) {}

// Gauge does nothing
func (NoopClient) Gauge(string, int64, ...string) {}

// FGauge does nothing
func (NoopClient) FGauge(string, float64, ...string) {}

// Timing does nothing
func (NoopClient) Timing(string, int64, ...string) {}

// TimingDuration does nothing
func (NoopClient) TimingDuration(string, time.Duration, ...string) {}

// Histogram does nothing
func (NoopClient) Histogram(string, int64, ...string) {}

// FHistogram does nothing
func (NoopClient) FHistogram(string, float64, ...string) {}

// Stop does nothing
func (NoopClient) Stop() {}
