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
	"sync"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of the sender goroutine
type State int32

// Sender states
const (
	// StateRunning is a normal operation
	StateRunning State = iota
	// StateDraining means Stop was called, queued metrics are being sent
	StateDraining
	// StateStopped means sender goroutine has finished
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// sender owns the queue, the packet and the transport
//
// sender is shared between client clones
type sender struct {
	addr    string
	out     io.WriteCloser
	handler ErrorHandlerFunc

	pollTimeout     time.Duration
	shutdownTimeout time.Duration

	queue  *lineQueue
	packet *packet

	state    int32
	done     chan struct{}
	stopOnce sync.Once

	lostPackets, droppedLines int64
}

func newSender(options *ClientOptions, out io.WriteCloser) *sender {
	return &sender{
		addr:            options.Addr,
		out:             out,
		handler:         options.ErrorHandler,
		pollTimeout:     options.PollTimeout,
		shutdownTimeout: options.ShutdownTimeout,
		queue:           newLineQueue(),
		packet:          newPacket(options.MaxPacketSize),
		done:            make(chan struct{}),
	}
}

// enqueue hands line over to the sender goroutine
func (s *sender) enqueue(line string) {
	if !s.queue.offer(line) {
		atomic.AddInt64(&s.droppedLines, 1)
	}
}

// sendLoop packs queued lines into packets and delivers them
//
// Loop runs until queue is closed and drained
func (s *sender) sendLoop() {
	defer close(s.done)
	defer atomic.StoreInt32(&s.state, int32(StateStopped))

	for {
		line, ok := s.queue.poll(s.pollTimeout)
		if !ok {
			if s.queue.drained() {
				break
			}

			continue
		}

		s.guard(func() { s.process(line) })
	}

	s.guard(s.flush)
}

// guard runs fn reporting any panic, so that sender goroutine never dies
func (s *sender) guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.report(&PanicError{Value: r})
		}
	}()

	fn()
}

func (s *sender) process(line string) {
	if !s.packet.fits(line) {
		s.flush()

		if !s.packet.fits(line) {
			// larger than the whole packet, let the transport deal with it
			s.write([]byte(line))
			return
		}
	}

	s.packet.append(line)

	if s.queue.empty() {
		s.flush()
	}
}

// flush sends current packet, packet is reset even if sending fails
func (s *sender) flush() {
	if s.packet.empty() {
		return
	}

	defer s.packet.reset()

	s.write(s.packet.bytes())
}

func (s *sender) write(data []byte) {
	n, err := s.out.Write(data)
	if err != nil {
		atomic.AddInt64(&s.lostPackets, 1)
		s.report(fmt.Errorf("error writing to %s: %w", s.addr, err))

		return
	}

	if n != len(data) {
		atomic.AddInt64(&s.lostPackets, 1)
		s.report(&SendError{Addr: s.addr, Sent: n, Total: len(data)})
	}
}

// report passes err to the handler, handler panics are swallowed
func (s *sender) report(err error) {
	defer func() {
		_ = recover()
	}()

	s.handler(err)
}

// stop closes the queue, waits for the sender goroutine and closes transport
func (s *sender) stop() {
	s.stopOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				s.report(&PanicError{Value: r})
			}
		}()

		atomic.CompareAndSwapInt32(&s.state, int32(StateRunning), int32(StateDraining))
		s.queue.close()

		timer := time.NewTimer(s.shutdownTimeout)
		defer timer.Stop()

		select {
		case <-s.done:
		case <-timer.C:
			s.report(fmt.Errorf("%w (%s)", ErrShutdownTimeout, s.shutdownTimeout))
		}

		if err := s.out.Close(); err != nil {
			s.report(fmt.Errorf("error closing connection to %s: %w", s.addr, err))
		}
	})
}

func (s *sender) currentState() State {
	return State(atomic.LoadInt32(&s.state))
}
