package scan

import "bytes"

// LineScanner iterates over the line spans of one in-memory block.
//
// Next returns each line's content with the trailing \r\n or \n stripped,
// together with the raw byte size including the terminator. The zero cost of
// a span: content always aliases the block, nothing is copied.
//
// Blocks in the middle of a range end with an incomplete tail line; such
// blocks are scanned with final=false and the tail stays unconsumed for
// Rest(), to be carried into the next block. Only the last block of an input
// is scanned with final=true, which emits an unterminated tail as a line
// whose size is just its content length.
type LineScanner struct {
	data  []byte
	pos   int
	final bool
}

// NewLineScanner returns a scanner over data. LineScanner is a small value;
// the struct can also be built directly for a stack-allocated scan.
func NewLineScanner(data []byte, final bool) *LineScanner {
	return &LineScanner{data: data, final: final}
}

// Next returns the next line span. ok is false when the block is exhausted,
// or when only an unterminated tail remains and the scanner is not final.
func (s *LineScanner) Next() (line []byte, size int, ok bool) {
	if s.pos >= len(s.data) {
		return nil, 0, false
	}

	rel := bytes.IndexByte(s.data[s.pos:], '\n')
	if rel < 0 {
		if !s.final {
			// Incomplete tail, the caller carries it into the next block
			return nil, 0, false
		}

		line = s.data[s.pos:]
		size = len(line)
		s.pos = len(s.data)

		return trimCR(line), size, true
	}

	line = s.data[s.pos : s.pos+rel]
	size = rel + 1
	s.pos += size

	return trimCR(line), size, true
}

// Rest returns the unconsumed tail of the block.
func (s *LineScanner) Rest() []byte {
	return s.data[s.pos:]
}

// Consumed returns the number of bytes emitted as complete lines so far.
func (s *LineScanner) Consumed() int {
	return s.pos
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}

	return line
}
