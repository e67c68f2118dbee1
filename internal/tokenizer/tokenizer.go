package tokenizer

import (
	"io"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// Source is a character source backed by a shape-core stream.
//
// On top of the stream's peek and consume operations it supports pushing
// back exactly one character: the location before the most recent NextChar
// is remembered and restored by Unread. A second Unread without an
// intervening NextChar is refused.
type Source struct {
	stream    shapetokenizer.Stream
	prev      shapetokenizer.Location
	canUnread bool
}

// NewSource wraps an existing shape-core stream.
func NewSource(stream shapetokenizer.Stream) *Source {
	return &Source{stream: stream}
}

// NewSourceFromString creates a Source reading from an in-memory string.
func NewSourceFromString(input string) *Source {
	return NewSource(shapetokenizer.NewStream(input))
}

// NewSourceFromReader creates a Source reading from r.
// The underlying stream buffers r in chunks, so large inputs are not loaded
// into memory at once.
func NewSourceFromReader(r io.Reader) *Source {
	return NewSource(shapetokenizer.NewStreamFromReader(r))
}

// PeekChar returns the next character without consuming it.
// ok is false at end of input.
func (s *Source) PeekChar() (r rune, ok bool) {
	return s.stream.PeekChar()
}

// NextChar consumes and returns the next character.
// ok is false at end of input, in which case nothing is consumed and the
// previous pushback point is dropped.
func (s *Source) NextChar() (r rune, ok bool) {
	loc := s.stream.GetLocation()
	r, ok = s.stream.NextChar()
	if !ok {
		s.canUnread = false
		return 0, false
	}
	s.prev = loc
	s.canUnread = true
	return r, true
}

// Unread pushes the most recently consumed character back onto the source.
// It reports false if there is nothing to push back.
func (s *Source) Unread() bool {
	if !s.canUnread {
		return false
	}
	s.stream.SetLocation(s.prev)
	s.canUnread = false
	return true
}

// IsEos reports whether the source is exhausted.
func (s *Source) IsEos() bool {
	return s.stream.IsEos()
}

// Offset returns the number of characters consumed so far.
func (s *Source) Offset() int {
	return s.stream.GetOffset()
}
