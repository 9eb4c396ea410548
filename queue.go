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
	"sync"
	"time"
)

// compactThreshold is the number of consumed slots after which queue storage is compacted
const compactThreshold = 1024

// lineQueue is an unbounded FIFO of formatted lines
//
// Any number of goroutines might offer lines, only sender goroutine polls them.
type lineQueue struct {
	mu     sync.Mutex
	lines  []string
	head   int
	closed bool

	// notify has capacity of 1, it is signalled on every offer and on close
	notify chan struct{}
}

func newLineQueue() *lineQueue {
	return &lineQueue{
		notify: make(chan struct{}, 1),
	}
}

// offer puts line at the end of the queue, it never blocks
//
// offer returns false if queue was closed, line is dropped in that case
func (q *lineQueue) offer(line string) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.lines = append(q.lines, line)
	q.mu.Unlock()

	q.signal()

	return true
}

// poll waits up to timeout for the next line
//
// poll returns early with false if the queue is closed and empty
func (q *lineQueue) poll(timeout time.Duration) (string, bool) {
	if line, ok := q.tryPoll(); ok {
		return line, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-q.notify:
			if line, ok := q.tryPoll(); ok {
				return line, true
			}

			if q.drained() {
				return "", false
			}
		case <-timer.C:
			return q.tryPoll()
		}
	}
}

func (q *lineQueue) tryPoll() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.lines) {
		return "", false
	}

	line := q.lines[q.head]
	q.lines[q.head] = ""
	q.head++

	switch {
	case q.head == len(q.lines):
		q.lines = q.lines[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.lines):
		n := copy(q.lines, q.lines[q.head:])
		for i := n; i < len(q.lines); i++ {
			q.lines[i] = ""
		}
		q.lines = q.lines[:n]
		q.head = 0
	}

	return line, true
}

// empty checks whether there's no line immediately available
func (q *lineQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.head == len(q.lines)
}

// drained is true when queue is closed and all the lines were consumed
func (q *lineQueue) drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.closed && q.head == len(q.lines)
}

// close stops accepting new lines, queued lines could still be polled
func (q *lineQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
}

func (q *lineQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
