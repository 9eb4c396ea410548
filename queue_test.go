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
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := newLineQueue()

	assert.True(t, q.empty())

	for i := 0; i < 3000; i++ {
		require.True(t, q.offer(strconv.Itoa(i)))
	}

	assert.False(t, q.empty())

	for i := 0; i < 3000; i++ {
		line, ok := q.poll(time.Second)
		require.True(t, ok)
		require.Equal(t, strconv.Itoa(i), line)
	}

	assert.True(t, q.empty())
}

func TestQueuePollTimeout(t *testing.T) {
	q := newLineQueue()

	start := time.Now()
	_, ok := q.poll(50 * time.Millisecond)

	assert.False(t, ok)
	assert.True(t, time.Since(start) >= 50*time.Millisecond)
}

func TestQueuePollWakeup(t *testing.T) {
	q := newLineQueue()

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.offer("foo")
	}()

	line, ok := q.poll(10 * time.Second)

	assert.True(t, ok)
	assert.Equal(t, "foo", line)
}

func TestQueueClose(t *testing.T) {
	q := newLineQueue()

	require.True(t, q.offer("foo"))
	q.close()

	assert.False(t, q.offer("bar"))
	assert.False(t, q.drained())

	line, ok := q.poll(time.Second)
	assert.True(t, ok)
	assert.Equal(t, "foo", line)

	assert.True(t, q.drained())

	start := time.Now()
	_, ok = q.poll(10 * time.Second)
	assert.False(t, ok)
	assert.True(t, time.Since(start) < 5*time.Second, "poll on closed queue should return immediately")
}

func TestQueueCloseWakesPoll(t *testing.T) {
	q := newLineQueue()

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.close()
	}()

	start := time.Now()
	_, ok := q.poll(10 * time.Second)

	assert.False(t, ok)
	assert.True(t, time.Since(start) < 5*time.Second)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := newLineQueue()

	const (
		producers = 8
		count     = 2000
	)

	var wg sync.WaitGroup

	for i := 0; i < producers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			for j := 0; j < count; j++ {
				q.offer(strconv.Itoa(i) + ":" + strconv.Itoa(j))
			}
		}(i)
	}

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}

	for received := 0; received < producers*count; received++ {
		line, ok := q.poll(5 * time.Second)
		require.True(t, ok, "timed out after %d lines", received)

		var producer, seq int

		for k := 0; k < len(line); k++ {
			if line[k] == ':' {
				producer, _ = strconv.Atoi(line[:k])
				seq, _ = strconv.Atoi(line[k+1:])

				break
			}
		}

		require.Equal(t, last[producer]+1, seq, "out of order line from producer %d", producer)
		last[producer] = seq
	}

	wg.Wait()
	assert.True(t, q.empty())
}
