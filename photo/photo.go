// ABOUTME: Defines Photo and Slide value types used by the slideshow optimizer
// ABOUTME: Slides merge one horizontal or two vertical photos and cache their combined tag set

package photo

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrInvalidSlide is returned when photos cannot legally form a slide
var ErrInvalidSlide = errors.New("invalid slide")

// Orientation of a photo
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the single-letter code used in input files
func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}

	return "H"
}

// Photo represents a tagged photograph. Treat as immutable after NewPhoto.
type Photo struct {
	ID          int                // Index of the photo in the input collection
	Orientation Orientation        // Horizontal or Vertical
	Tags        mapset.Set[string] // Descriptive keywords (no duplicates)
}

// NewPhoto creates a photo with the given tags; duplicate tags collapse
func NewPhoto(id int, orientation Orientation, tags ...string) Photo {
	set := mapset.NewThreadUnsafeSetWithSize[string](len(tags))
	for _, tag := range tags {
		set.Add(tag)
	}

	return Photo{ID: id, Orientation: orientation, Tags: set}
}

// String returns a formatted string representation of the photo
func (p Photo) String() string {
	return fmt.Sprintf("%s#%d (%d tags)", p.Orientation, p.ID, p.Tags.Cardinality())
}

// Slide is one displayed unit: a single horizontal photo or two vertical photos
type Slide struct {
	photos [2]Photo
	count  int
	tags   mapset.Set[string]
}

// NewSlide builds a slide from one horizontal photo or two distinct vertical photos
func NewSlide(photos ...Photo) (Slide, error) {
	switch len(photos) {
	case 1:
		if photos[0].Orientation != Horizontal {
			return Slide{}, fmt.Errorf("%w: vertical photo %d needs a partner", ErrInvalidSlide, photos[0].ID)
		}

		return Slide{photos: [2]Photo{photos[0]}, count: 1, tags: photos[0].Tags}, nil
	case 2:
		a, b := photos[0], photos[1]
		if a.Orientation != Vertical || b.Orientation != Vertical {
			return Slide{}, fmt.Errorf("%w: photos %d and %d must both be vertical", ErrInvalidSlide, a.ID, b.ID)
		}

		if a.ID == b.ID {
			return Slide{}, fmt.Errorf("%w: photo %d used twice", ErrInvalidSlide, a.ID)
		}

		return Slide{photos: [2]Photo{a, b}, count: 2, tags: a.Tags.Union(b.Tags)}, nil
	default:
		return Slide{}, fmt.Errorf("%w: a slide holds 1 or 2 photos, got %d", ErrInvalidSlide, len(photos))
	}
}

// MustSlide is like NewSlide but panics on error. Intended for tests and literals.
func MustSlide(photos ...Photo) Slide {
	s, err := NewSlide(photos...)
	if err != nil {
		panic(err)
	}

	return s
}

// Photos returns the constituent photos in slide order
func (s Slide) Photos() []Photo {
	return s.photos[:s.count]
}

// IDs returns the constituent photo ids in slide order
func (s Slide) IDs() []int {
	ids := make([]int, s.count)
	for i := range s.count {
		ids[i] = s.photos[i].ID
	}

	return ids
}

// Tags returns the union of the constituent photos' tags. Do not mutate.
func (s Slide) Tags() mapset.Set[string] {
	return s.tags
}

// IsVertical reports whether the slide is a vertical pair
func (s Slide) IsVertical() bool {
	return s.count == 2
}

// String returns the slide ids joined by spaces, as written to output files
func (s Slide) String() string {
	var b strings.Builder
	for i := range s.count {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "%d", s.photos[i].ID)
	}

	return b.String()
}
