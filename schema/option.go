package schema

import "github.com/pignacio/d2-itemsorter-go/bitio"

// Option is a one-bit presence flag followed conditionally by a value of
// type X: absent options consume exactly one bit and carry no payload.
type Option[X any] struct {
	value X
	set   bool
}

// Some wraps a present value.
func Some[X any](v X) Option[X] {
	return Option[X]{value: v, set: true}
}

// None returns an absent Option.
func None[X any]() Option[X] {
	return Option[X]{}
}

// Present reports whether the option carries a value.
func (o Option[X]) Present() bool { return o.set }

// Get returns the wrapped value and whether it was present.
func (o Option[X]) Get() (X, bool) { return o.value, o.set }

// ReadOption reads the presence bit and, if set, decodes X via read.
func ReadOption[X any](r *bitio.Reader, read func(*bitio.Reader) (X, error)) (Option[X], error) {
	present, err := bitio.ReadInt[uint8](r, 1)
	if err != nil {
		return Option[X]{}, err
	}
	if present == 0 {
		return None[X](), nil
	}
	v, err := read(r)
	if err != nil {
		return Option[X]{}, err
	}
	return Some(v), nil
}

// WriteOption writes the presence bit and, if o is present, encodes its
// value via write.
func WriteOption[X any](w *bitio.Writer, o Option[X], write func(*bitio.Writer, X) error) error {
	if !o.set {
		return bitio.WriteInt[uint8](w, 0, 1)
	}
	if err := bitio.WriteInt[uint8](w, 1, 1); err != nil {
		return err
	}
	return write(w, o.value)
}
