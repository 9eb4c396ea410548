package main

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
	"bytes"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder implements statsd.Statter capturing calls
type recorder struct {
	calls []string
}

func (r *recorder) record(method, aspect string, value interface{}, tags []string) {
	r.calls = append(r.calls, fmt.Sprintf("%s %s %v %s", method, aspect, value, strings.Join(tags, ",")))
}

func (r *recorder) Count(aspect string, delta int64, tags ...string) {
	r.record("Count", aspect, delta, tags)
}
func (r *recorder) Incr(aspect string, tags ...string) { r.record("Incr", aspect, 1, tags) }
func (r *recorder) Decr(aspect string, tags ...string) { r.record("Decr", aspect, -1, tags) }
func (r *recorder) Gauge(aspect string, value int64, tags ...string) {
	r.record("Gauge", aspect, value, tags)
}
func (r *recorder) FGauge(aspect string, value float64, tags ...string) {
	r.record("FGauge", aspect, value, tags)
}
func (r *recorder) Timing(aspect string, timeInMs int64, tags ...string) {
	r.record("Timing", aspect, timeInMs, tags)
}
func (r *recorder) TimingDuration(aspect string, delta time.Duration, tags ...string) {
	r.record("TimingDuration", aspect, delta, tags)
}
func (r *recorder) Histogram(aspect string, value int64, tags ...string) {
	r.record("Histogram", aspect, value, tags)
}
func (r *recorder) FHistogram(aspect string, value float64, tags ...string) {
	r.record("FHistogram", aspect, value, tags)
}
func (r *recorder) Stop() {}

func TestEmit(t *testing.T) {
	for _, tc := range []struct {
		kind, value string
		expected    string
	}{
		{"c", "24", "Count x 24 a=b"},
		{"c", "-1", "Count x -1 a=b"},
		{"ms", "123", "Timing x 123 a=b"},
		{"g", "423", "Gauge x 423 a=b"},
		{"g", "0.423", "FGauge x 0.423 a=b"},
		{"h", "7", "Histogram x 7 a=b"},
		{"h", "7.5", "FHistogram x 7.5 a=b"},
	} {
		tc := tc
		t.Run(tc.kind+"/"+tc.value, func(t *testing.T) {
			r := &recorder{}
			require.NoError(t, emit(r, tc.kind, "x", tc.value, []string{"a=b"}))
			assert.Equal(t, []string{tc.expected}, r.calls)
		})
	}
}

func TestEmitErrors(t *testing.T) {
	r := &recorder{}

	assert.Error(t, emit(r, "c", "x", "1.5", nil))
	assert.Error(t, emit(r, "ms", "x", "fast", nil))
	assert.Error(t, emit(r, "g", "x", "lots", nil))
	assert.Error(t, emit(r, "s", "x", "1", nil))
	assert.Empty(t, r.calls)
}

func TestParseArgs(t *testing.T) {
	var out bytes.Buffer

	cfg, err := parseArgs([]string{"-H", "statsd.local", "--port", "9125", "--prefix", "web",
		"-t", "env=prod", "-t", "canary", "-k", "g", "pool.size", "42"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "statsd.local", cfg.host)
	assert.Equal(t, 9125, cfg.port)
	assert.Equal(t, "web", cfg.prefix)
	assert.Equal(t, []string{"env=prod", "canary"}, cfg.tags)
	assert.Equal(t, "g", cfg.kind)
	assert.Equal(t, "pool.size", cfg.aspect)
	assert.Equal(t, "42", cfg.value)

	_, err = parseArgs([]string{"only.aspect"}, &out)
	assert.Error(t, err)

	_, err = parseArgs([]string{"--help"}, &out)
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}

func TestRun(t *testing.T) {
	inSocket, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer inSocket.Close() //nolint: errcheck

	port := inSocket.LocalAddr().(*net.UDPAddr).Port

	var out bytes.Buffer

	require.NoError(t, run([]string{"-H", "127.0.0.1", "-p", fmt.Sprint(port), "--prefix", "web",
		"-t", "env=prod", "-t", "canary", "requests", "3"}, &out))

	require.NoError(t, inSocket.SetReadDeadline(time.Now().Add(5*time.Second)))

	buf := make([]byte, 1500)
	n, err := inSocket.Read(buf)
	require.NoError(t, err)

	assert.Equal(t, "web.requests,canary,env=prod:3|c", string(buf[:n]))
}
