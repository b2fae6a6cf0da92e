// ABOUTME: Tests for Photo and Slide construction
// ABOUTME: Verifies tag merging, orientation rules, and id views

package photo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhotoDeduplicatesTags(t *testing.T) {
	p := NewPhoto(3, Horizontal, "cat", "beach", "cat")

	assert.Equal(t, 2, p.Tags.Cardinality())
	assert.True(t, p.Tags.Contains("cat", "beach"))
	assert.Equal(t, "H#3 (2 tags)", p.String())
}

// TestVerticalSlideMergesTags covers the {"a","b"} + {"b","c"} example
func TestVerticalSlideMergesTags(t *testing.T) {
	a := NewPhoto(0, Vertical, "a", "b")
	b := NewPhoto(1, Vertical, "b", "c")

	slide, err := NewSlide(a, b)
	require.NoError(t, err)

	assert.True(t, slide.IsVertical())
	assert.Equal(t, []int{0, 1}, slide.IDs())
	assert.Equal(t, 3, slide.Tags().Cardinality())
	assert.True(t, slide.Tags().Contains("a", "b", "c"))
	assert.Equal(t, "0 1", slide.String())

	// Constituent photos keep their own tags
	assert.Equal(t, 2, a.Tags.Cardinality())
	assert.Equal(t, 2, b.Tags.Cardinality())
}

func TestNewSlideRejectsInvalidCombinations(t *testing.T) {
	h1 := NewPhoto(0, Horizontal, "x")
	h2 := NewPhoto(1, Horizontal, "y")
	v1 := NewPhoto(2, Vertical, "z")
	v2 := NewPhoto(3, Vertical, "w")

	tests := []struct {
		name   string
		photos []Photo
	}{
		{name: "no photos", photos: nil},
		{name: "lone vertical", photos: []Photo{v1}},
		{name: "two horizontals", photos: []Photo{h1, h2}},
		{name: "mixed orientations", photos: []Photo{v1, h1}},
		{name: "same vertical twice", photos: []Photo{v1, v1}},
		{name: "three photos", photos: []Photo{v1, v2, v1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlide(tt.photos...)
			require.ErrorIs(t, err, ErrInvalidSlide)
		})
	}
}

func TestHorizontalSlide(t *testing.T) {
	h := NewPhoto(7, Horizontal, "sun", "sea")

	slide := MustSlide(h)

	assert.False(t, slide.IsVertical())
	assert.Equal(t, []int{7}, slide.IDs())
	assert.Len(t, slide.Photos(), 1)
	assert.True(t, slide.Tags().Equal(h.Tags))
}

func TestMustSlidePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustSlide(NewPhoto(0, Vertical, "a"))
	})
}
