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
	"math"
	"strconv"
	"strings"
)

// Metric kinds as they appear on the wire
const (
	kindCounter   = "c"
	kindGauge     = "g"
	kindTiming    = "ms"
	kindHistogram = "h"
)

// maxFractionDigits limits precision of floating point values
const maxFractionDigits = 6

// formatter renders metric lines, it is immutable and safe for concurrent use
type formatter struct {
	prefix       string
	constantTags string
}

func newFormatter(prefix string, constantTags []string) formatter {
	return formatter{
		prefix:       normalizePrefix(prefix),
		constantTags: tagString(constantTags, ""),
	}
}

// intLine formats metric line with integer value
func (f formatter) intLine(aspect string, value int64, kind string, tags []string) string {
	buf := f.appendHead(make([]byte, 0, f.estimate(aspect, tags)), aspect, tags)
	buf = strconv.AppendInt(buf, value, 10)

	return f.appendKind(buf, kind)
}

// floatLine formats metric line with floating point value
func (f formatter) floatLine(aspect string, value float64, kind string, tags []string) string {
	buf := f.appendHead(make([]byte, 0, f.estimate(aspect, tags)), aspect, tags)
	buf = appendFloat(buf, value)

	return f.appendKind(buf, kind)
}

func (f formatter) estimate(aspect string, tags []string) int {
	n := len(f.prefix) + len(aspect) + len(f.constantTags) + 32
	for _, tag := range tags {
		n += len(tag) + 1
	}

	return n
}

func (f formatter) appendHead(buf []byte, aspect string, tags []string) []byte {
	buf = append(buf, f.prefix...)
	buf = append(buf, aspect...)
	buf = appendTags(buf, tags, f.constantTags)

	return append(buf, ':')
}

func (f formatter) appendKind(buf []byte, kind string) string {
	buf = append(buf, '|')
	buf = append(buf, kind...)

	return string(buf)
}

// tagString renders tags after already rendered prefix
//
// Tags are appended in reverse order: ["a=b", "c=d"] with prefix ",x=y"
// renders as ",x=y,c=d,a=b"
func tagString(tags []string, prefix string) string {
	return string(appendTags(nil, tags, prefix))
}

func appendTags(buf []byte, tags []string, prefix string) []byte {
	buf = append(buf, prefix...)

	for i := len(tags) - 1; i >= 0; i-- {
		buf = append(buf, ',')
		buf = append(buf, tags[i]...)
	}

	return buf
}

// appendFloat renders value in a fixed format which doesn't depend on locale:
// no exponent, no grouping, at most 6 fractional digits
func appendFloat(buf []byte, value float64) []byte {
	switch {
	case math.IsNaN(value):
		return append(buf, "NaN"...)
	case math.IsInf(value, 1):
		return append(buf, "Inf"...)
	case math.IsInf(value, -1):
		return append(buf, "-Inf"...)
	}

	// shortest representation first, so that 123456789012345.67 doesn't turn into
	// 123456789012345.671875
	s := strconv.FormatFloat(value, 'f', -1, 64)

	dot := strings.IndexByte(s, '.')
	if dot == -1 || len(s)-dot-1 <= maxFractionDigits {
		return append(buf, s...)
	}

	s = strconv.FormatFloat(value, 'f', maxFractionDigits, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	if s == "-0" {
		s = "0"
	}

	return append(buf, s...)
}
