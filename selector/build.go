// ABOUTME: Builds the initial slide sequence from vertical and horizontal photos
// ABOUTME: Pairs vertical photos by minimal tag overlap within a bounded look-ahead window

package selector

import (
	"fmt"

	"slideshow-sorter/photo"
)

// MakeSlides builds the initial slide sequence and records its score as the
// initial score. Vertical pairs come first in pairing order, followed by one
// slide per horizontal photo in input order.
func (s *Selector) MakeSlides() error {
	if len(s.vertical)+len(s.horizontal) == 0 {
		return ErrNoPhotos
	}

	if len(s.vertical)%2 != 0 {
		return fmt.Errorf("%w: %d vertical photos cannot all be paired", ErrUnpairedVertical, len(s.vertical))
	}

	slides := make([]photo.Slide, 0, len(s.vertical)/2+len(s.horizontal))
	paired := make([]bool, len(s.vertical))

	for i := range s.vertical {
		if paired[i] {
			continue
		}

		paired[i] = true

		j := findVerticalPair(s.vertical, i, paired, s.cfg.PairingWindow)
		if j < 0 {
			return fmt.Errorf("%w: no partner for vertical photo %d", ErrUnpairedVertical, s.vertical[i].ID)
		}

		paired[j] = true

		slide, err := photo.NewSlide(s.vertical[i], s.vertical[j])
		if err != nil {
			return fmt.Errorf("failed to pair vertical photos: %w", err)
		}

		slides = append(slides, slide)
	}

	for _, p := range s.horizontal {
		slide, err := photo.NewSlide(p)
		if err != nil {
			return fmt.Errorf("failed to build horizontal slide: %w", err)
		}

		slides = append(slides, slide)
	}

	s.slides = slides
	s.initialScore = EvaluateScore(slides)
	s.currentScore = s.initialScore
	s.built = true

	s.logger.Debug("slides built", "slides", len(slides), "vertical", len(s.vertical), "horizontal", len(s.horizontal), "score", s.initialScore)

	return nil
}

// findVerticalPair returns the index of the unpaired vertical photo after i that
// shares the fewest tags with photos[i], looking at no more than window
// candidates. Ties go to the earliest candidate. Returns -1 if none is left.
func findVerticalPair(photos []photo.Photo, i int, paired []bool, window int) int {
	best, bestShared := -1, 0
	seen := 0

	for j := i + 1; j < len(photos) && seen < window; j++ {
		if paired[j] {
			continue
		}

		seen++

		shared := commonTags(photos[i].Tags, photos[j].Tags)
		if best < 0 || shared < bestShared {
			best, bestShared = j, shared
		}

		if bestShared == 0 {
			break
		}
	}

	return best
}
