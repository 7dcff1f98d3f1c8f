// Package codecerr defines the error vocabulary shared by every layer of
// the save-file codec: a closed set of failure kinds, a bit index recording
// where in the stream the failure was detected, and a path of named/indexed
// segments accumulated as the error propagates back out of nested parsers.
package codecerr

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind identifies why a parse or write operation failed.
type Kind uint8

const (
	// EndOfData means fewer bits remained than the operation required.
	EndOfData Kind = iota
	// InvalidBitWidth means a width argument was out of the legal range.
	InvalidBitWidth
	// ValueOverflow means a decoded or supplied value didn't fit its
	// destination width/type.
	ValueOverflow
	// BadPadding means alignment padding contained a non-zero bit.
	BadPadding
	// InvalidMagic means a framing marker didn't match its expected bytes.
	InvalidMagic
	// InvalidHuffman means no prefix code matched within the maximum code
	// length.
	InvalidHuffman
	// InvalidAttributeId means an attribute id fell outside the legal
	// range.
	InvalidAttributeId
	// MissingContext means a required ParseContext key was never set.
	MissingContext
	// MissingVersion means the format version was required but absent
	// from the ParseContext.
	MissingVersion
	// RecursionLimit means socketed-item recursion exceeded the
	// defense-in-depth depth cap.
	RecursionLimit
	// InvalidData means the decoded value violates a structural
	// invariant not covered by a more specific Kind.
	InvalidData
	// InvalidAction means the caller asked the codec to do something it
	// cannot do given its current state (e.g. write a property terminator
	// shorter than nine bits).
	InvalidAction
)

func (k Kind) String() string {
	switch k {
	case EndOfData:
		return "EndOfData"
	case InvalidBitWidth:
		return "InvalidBitWidth"
	case ValueOverflow:
		return "ValueOverflow"
	case BadPadding:
		return "BadPadding"
	case InvalidMagic:
		return "InvalidMagic"
	case InvalidHuffman:
		return "InvalidHuffman"
	case InvalidAttributeId:
		return "InvalidAttributeId"
	case MissingContext:
		return "MissingContext"
	case MissingVersion:
		return "MissingVersion"
	case RecursionLimit:
		return "RecursionLimit"
	case InvalidData:
		return "InvalidData"
	case InvalidAction:
		return "InvalidAction"
	default:
		return "Unknown"
	}
}

// Segment is one hop of an error's path: either a named field
// ("header", "properties") or a numeric index into a list ("[3]").
type Segment struct {
	Name     string
	Index    int
	HasIndex bool
}

// Field builds a named-field path segment.
func Field(name string) Segment {
	return Segment{Name: name}
}

// Elem builds a numeric-index path segment, optionally qualified by a
// container name (pass "" for an anonymous list).
func Elem(name string, index int) Segment {
	return Segment{Name: name, Index: index, HasIndex: true}
}

func (s Segment) String() string {
	if s.HasIndex {
		if s.Name == "" {
			return "[" + strconv.Itoa(s.Index) + "]"
		}
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	}
	return "." + s.Name
}

// Error is the codec's error type: a Kind, the bit index where it was
// first detected, a path accumulated as the error unwinds, and an
// underlying cause (captured with github.com/cockroachdb/errors so the
// originating stack trace survives wrapping).
type Error struct {
	Kind     Kind
	BitIndex uint64
	Path     []Segment
	cause    error
}

// New creates a fresh *Error of the given Kind, detected at bitIndex, with
// a formatted message as its cause.
func New(kind Kind, bitIndex uint64, format string, args ...interface{}) *Error {
	return &Error{
		Kind:     kind,
		BitIndex: bitIndex,
		cause:    errors.Newf(format, args...),
	}
}

// Wrap creates a fresh *Error of the given Kind, detected at bitIndex,
// wrapping an existing error as its cause.
func Wrap(kind Kind, bitIndex uint64, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:     kind,
		BitIndex: bitIndex,
		cause:    errors.Wrapf(cause, format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("github.com/pignacio/d2-itemsorter-go: ")
	b.WriteString(e.Kind.String())
	b.WriteString(" @bit ")
	b.WriteString(strconv.FormatUint(e.BitIndex, 10))
	if path := e.PathString(); path != "" {
		b.WriteString(" at ")
		b.WriteString(path)
	}
	b.WriteString(": ")
	b.WriteString(e.cause.Error())
	return b.String()
}

// Unwrap exposes the underlying cause, so errors.Is/errors.As (including
// cockroachdb/errors' variants) see through to it.
func (e *Error) Unwrap() error {
	return e.cause
}

// PathString renders the accumulated path, outermost segment first.
func (e *Error) PathString() string {
	var b strings.Builder
	for _, seg := range e.Path {
		b.WriteString(seg.String())
	}
	return b.String()
}

// Annotate prepends a path segment to err if it is (or wraps) a
// *codecerr.Error, returning a new error value that shares the original's
// Kind, BitIndex, and cause but has seg at the front of its Path. If err
// isn't a *codecerr.Error, it is wrapped plainly so the path is still
// somewhat discoverable by a caller inspecting the error chain.
func Annotate(err error, seg Segment) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		cloned := *ce
		cloned.Path = append([]Segment{seg}, ce.Path...)
		return &cloned
	}
	return errors.Wrapf(err, "in %s", seg)
}

// Is reports whether err is a *codecerr.Error of the given Kind.
func Is(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
