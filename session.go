package raster

import (
	"slices"

	"github.com/pkg/errors"
)

// Session owns a table of named images that filters read from and write to.
// A Session is not safe for concurrent use.
type Session struct {
	images map[string]*Buffer
}

func NewSession() *Session {
	return &Session{images: make(map[string]*Buffer)}
}

// Load stores img under name, replacing any previous image.
func (s *Session) Load(name string, img *Buffer) {
	if s.images == nil {
		s.images = make(map[string]*Buffer)
	}
	s.images[name] = img
}

// Image returns the image stored under name or an error matching [ErrInvalidState].
func (s *Session) Image(name string) (*Buffer, error) {
	img, ok := s.images[name]
	if !ok || img.Empty() {
		return nil, InvalidState(name)
	}
	return img, nil
}

// Names returns the stored image names in lexical order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *Session) Delete(name string) { delete(s.images, name) }

// Reset discards every image.
func (s *Session) Reset() { clear(s.images) }

// Apply runs f over the image named src and stores the result as dst.
// On error the table is left unchanged.
func (s *Session) Apply(f Filter, src, dst string, region Region) error {
	img, err := s.Image(src)
	if err != nil {
		return err
	}
	out, err := f.Process(img, region)
	if err != nil {
		return errors.Wrapf(err, "%s -> %s", src, dst)
	}
	s.Load(dst, out)
	return nil
}

// ApplyMasked is like Apply with the region selected by the image named mask.
func (s *Session) ApplyMasked(f Filter, src, mask, dst string) error {
	m, err := s.Image(mask)
	if err != nil {
		return err
	}
	return s.Apply(f, src, dst, Masked(m))
}

// Store runs fn over the image named src and stores its result as dst. It serves
// operations that are not a [Filter] such as flips or resizes.
func (s *Session) Store(src, dst string, fn func(*Buffer) (*Buffer, error)) error {
	img, err := s.Image(src)
	if err != nil {
		return err
	}
	out, err := fn(img)
	if err != nil {
		return errors.Wrapf(err, "%s -> %s", src, dst)
	}
	s.Load(dst, out)
	return nil
}
