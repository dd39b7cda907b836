package transcriber

import (
	"errors"

	"github.com/nguyentantai21042004/video-digest/internal/models"
)

// ErrNotDrained is returned by Recognition.Metadata before the fragment
// stream has been read to the end.
var ErrNotDrained = errors.New("recognition metadata is available only after all fragments were read")

// Recognition is a forward-only stream of fragments. It cannot be rewound:
// once Next returns false it keeps returning false.
//
//	for rec.Next() {
//		f := rec.Fragment()
//	}
//	if err := rec.Err(); err != nil { ... }
//	meta, _ := rec.Metadata()
type Recognition struct {
	produce  func() (models.Fragment, bool, error)
	metadata func() models.Metadata

	current models.Fragment
	err     error
	done    bool
}

// NewRecognition builds a stream from a producer. produce returns false
// when there are no more fragments. metadata is called once the stream is
// exhausted without error.
func NewRecognition(produce func() (models.Fragment, bool, error), metadata func() models.Metadata) *Recognition {
	return &Recognition{produce: produce, metadata: metadata}
}

// FromFragments streams a fixed list of fragments.
func FromFragments(fragments []models.Fragment, meta models.Metadata) *Recognition {
	i := 0
	return NewRecognition(func() (models.Fragment, bool, error) {
		if i >= len(fragments) {
			return models.Fragment{}, false, nil
		}
		f := fragments[i]
		i++
		return f, true, nil
	}, func() models.Metadata { return meta })
}

// Next advances to the next fragment.
func (r *Recognition) Next() bool {
	if r.done {
		return false
	}
	f, ok, err := r.produce()
	if err != nil {
		r.err = err
		r.done = true
		return false
	}
	if !ok {
		r.done = true
		return false
	}
	r.current = f
	return true
}

// Fragment returns the fragment Next moved to.
func (r *Recognition) Fragment() models.Fragment {
	return r.current
}

// Err returns the error that stopped the stream, if any.
func (r *Recognition) Err() error {
	return r.err
}

// Metadata describes the whole recognition. It fails until the stream is
// drained, and returns the stream error if the stream broke.
func (r *Recognition) Metadata() (models.Metadata, error) {
	if !r.done {
		return models.Metadata{}, ErrNotDrained
	}
	if r.err != nil {
		return models.Metadata{}, r.err
	}
	return r.metadata(), nil
}
