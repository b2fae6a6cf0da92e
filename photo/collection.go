// ABOUTME: Handles reading photo collections and writing slideshow files
// ABOUTME: Input lists one photo per line with orientation and tags; output lists slide photo ids

// Package photo holds the photo and slide model for the slideshow optimizer,
// along with the plain-text formats used to load photo collections and save
// the resulting slideshow.
package photo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedInput is returned when a photo collection cannot be parsed
var ErrMalformedInput = errors.New("malformed photo collection")

// maxLineSize bounds a single input line (photos can carry many tags)
const maxLineSize = 1 << 20

// Collection is a photo list split by orientation, preserving input order
type Collection struct {
	Vertical   []Photo
	Horizontal []Photo
}

// Len returns the total number of photos
func (c Collection) Len() int {
	return len(c.Vertical) + len(c.Horizontal)
}

// ReadCollectionFile opens path and parses it with ReadCollection
func ReadCollectionFile(path string) (Collection, error) {
	file, err := os.Open(path)
	if err != nil {
		return Collection{}, fmt.Errorf("failed to open photo collection: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	return ReadCollection(file)
}

// ReadCollection parses a photo collection.
//
// The first non-empty line holds the photo count N, followed by N lines of the form
//
//	H|V <tagCount> <tag> <tag> ...
//
// Photo ids are assigned from the zero-based photo line index.
func ReadCollection(r io.Reader) (Collection, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		collection Collection
		expected   = -1
		id         int
		lineNo     int
	)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if expected < 0 {
			n, err := strconv.Atoi(line)
			if err != nil || n < 0 {
				return Collection{}, fmt.Errorf("%w: line %d: invalid photo count %q", ErrMalformedInput, lineNo, line)
			}

			expected = n

			continue
		}

		if id >= expected {
			return Collection{}, fmt.Errorf("%w: line %d: more photos than the declared %d", ErrMalformedInput, lineNo, expected)
		}

		p, err := parsePhoto(id, line)
		if err != nil {
			return Collection{}, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, lineNo, err)
		}

		if p.Orientation == Vertical {
			collection.Vertical = append(collection.Vertical, p)
		} else {
			collection.Horizontal = append(collection.Horizontal, p)
		}

		id++
	}

	if err := scanner.Err(); err != nil {
		return Collection{}, fmt.Errorf("error reading photo collection: %w", err)
	}

	if expected < 0 {
		return Collection{}, fmt.Errorf("%w: missing photo count", ErrMalformedInput)
	}

	if id != expected {
		return Collection{}, fmt.Errorf("%w: declared %d photos, found %d", ErrMalformedInput, expected, id)
	}

	return collection, nil
}

// parsePhoto parses "H 3 cat beach sun"
func parsePhoto(id int, line string) (Photo, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Photo{}, fmt.Errorf("expected orientation and tag count, got %q", line)
	}

	var orientation Orientation

	switch fields[0] {
	case "H":
		orientation = Horizontal
	case "V":
		orientation = Vertical
	default:
		return Photo{}, fmt.Errorf("unknown orientation %q", fields[0])
	}

	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return Photo{}, fmt.Errorf("invalid tag count %q", fields[1])
	}

	tags := fields[2:]
	if len(tags) != count {
		return Photo{}, fmt.Errorf("declared %d tags, found %d", count, len(tags))
	}

	return NewPhoto(id, orientation, tags...), nil
}

// WriteSlideshow writes slides in the slideshow file format: the slide count,
// then one line per slide listing its photo ids.
func WriteSlideshow(w io.Writer, slides []Slide) error {
	writer := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(writer, "%d\n", len(slides)); err != nil {
		return fmt.Errorf("failed to write slide count: %w", err)
	}

	for _, slide := range slides {
		if _, err := writer.WriteString(slide.String() + "\n"); err != nil {
			return fmt.Errorf("failed to write slide: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}

// WriteSlideshowFile writes slides to path.
// Creates a backup (.bak) of the existing file before overwriting.
func WriteSlideshowFile(path string, slides []Slide) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		backupPath := path + ".bak"
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create slideshow: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close slideshow file: %w", closeErr)
		}
	}()

	return WriteSlideshow(file, slides)
}
