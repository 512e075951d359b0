// Package segment holds the speaker timeline types and the normalizer that
// turns raw diarization intervals into fixed-width, stably labelled chunks.
package segment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	ErrInvalidSegment = errors.New("invalid segment record")
	ErrInvalidChunk   = errors.New("chunk duration must be at least 1ms")
)

// Raw is one interval as emitted by the diarization collaborator.
// Label is the detector's opaque speaker token.
type Raw struct {
	Start float64
	End   float64
	Label string
}

// Segment is a normalized interval attributed to a dense speaker ID.
// On disk it is the 3-element record [start, end, speakerId].
type Segment struct {
	Start   float64
	End     float64
	Speaker int
}

// Duration returns End - Start in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("speaker %d: %.3f-%.3f", s.Speaker, s.Start, s.End)
}

func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{s.Start, s.End, s.Speaker})
}

func (s *Segment) UnmarshalJSON(data []byte) error {
	fields, err := splitRecord(data)
	if err != nil {
		return err
	}

	start, end, err := parseBounds(fields)
	if err != nil {
		return err
	}

	if start < 0 {
		return fmt.Errorf("%w: start before zero in %s", ErrInvalidSegment, data)
	}

	n, ok := fields[2].(json.Number)
	if !ok {
		return fmt.Errorf("%w: speaker id must be a number, got %s", ErrInvalidSegment, data)
	}
	id, err := strconv.Atoi(n.String())
	if err != nil || id < 0 {
		return fmt.Errorf("%w: speaker id must be a non-negative integer, got %s", ErrInvalidSegment, n)
	}

	*s = Segment{Start: start, End: end, Speaker: id}
	return nil
}

func (r Raw) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{r.Start, r.End, r.Label})
}

// UnmarshalJSON accepts the label as either a string or a number, since
// detectors differ in how they name speakers.
func (r *Raw) UnmarshalJSON(data []byte) error {
	fields, err := splitRecord(data)
	if err != nil {
		return err
	}

	start, end, err := parseBounds(fields)
	if err != nil {
		return err
	}

	var label string
	switch v := fields[2].(type) {
	case string:
		label = v
	case json.Number:
		label = v.String()
	default:
		return fmt.Errorf("%w: label must be a string or number, got %s", ErrInvalidSegment, data)
	}

	*r = Raw{Start: start, End: end, Label: label}
	return nil
}

func splitRecord(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields []any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSegment, err)
	}
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: want 3 fields, got %d", ErrInvalidSegment, len(fields))
	}
	return fields, nil
}

func parseBounds(fields []any) (float64, float64, error) {
	var bounds [2]float64
	for i := range bounds {
		n, ok := fields[i].(json.Number)
		if !ok {
			return 0, 0, fmt.Errorf("%w: time bound %v is not a number", ErrInvalidSegment, fields[i])
		}
		v, err := n.Float64()
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, fmt.Errorf("%w: time bound %v", ErrInvalidSegment, n)
		}
		bounds[i] = v
	}
	return bounds[0], bounds[1], nil
}

// Speakers returns the distinct speaker IDs in ascending order.
func Speakers(segs []Segment) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, s := range segs {
		if _, ok := seen[s.Speaker]; ok {
			continue
		}
		seen[s.Speaker] = struct{}{}
		ids = append(ids, s.Speaker)
	}
	sort.Ints(ids)
	return ids
}

// Clean drops degenerate records (end <= start) and reports how many went.
func Clean(segs []Segment) ([]Segment, int) {
	kept := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.End <= s.Start {
			continue
		}
		kept = append(kept, s)
	}
	return kept, len(segs) - len(kept)
}
