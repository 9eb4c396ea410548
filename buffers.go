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

// packet accumulates lines separated by '\n' up to fixed capacity
//
// packet is owned by sender goroutine only
type packet struct {
	buf  []byte
	size int
}

func newPacket(size int) *packet {
	return &packet{
		buf:  make([]byte, 0, size),
		size: size,
	}
}

// fits checks whether line (and separator, if needed) could be appended
func (p *packet) fits(line string) bool {
	need := len(line)
	if len(p.buf) > 0 {
		need++
	}

	return need <= p.size-len(p.buf)
}

// append adds line to the packet, caller should check fits first
func (p *packet) append(line string) {
	if len(p.buf) > 0 {
		p.buf = append(p.buf, '\n')
	}

	p.buf = append(p.buf, line...)
}

func (p *packet) empty() bool {
	return len(p.buf) == 0
}

func (p *packet) bytes() []byte {
	return p.buf
}

func (p *packet) reset() {
	p.buf = p.buf[:0]
}
