package segment

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Options tunes Normalize. ExpectedSpeakers only affects Result.Warning.
type Options struct {
	ExpectedSpeakers int
}

// Result is the normalized timeline plus what was learned on the way.
type Result struct {
	Segments []Segment
	Speakers *IdentityMap
	// Dropped counts zero or negative duration intervals.
	Dropped int
	// Warning is set when the detected speaker count differs from
	// Options.ExpectedSpeakers. It never turns into an error.
	Warning string
}

// SpeakerCount is the number of distinct raw labels seen.
func (r Result) SpeakerCount() int {
	return r.Speakers.Len()
}

type msInterval struct {
	start, end int64
	label      string
}

// Normalize sorts raws by start (stable), relabels speakers by first
// appearance, and cuts every interval into ceil(d/chunk) chunks of exactly
// chunk seconds. The last chunk is padded past the interval end rather than
// truncated. All bounds are snapped to whole milliseconds, and the arithmetic
// is done in milliseconds so results do not depend on float accumulation.
func Normalize(raws []Raw, chunk float64, opts Options) (Result, error) {
	chunkMs := toMillis(chunk)
	if math.IsNaN(chunk) || chunkMs < 1 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidChunk, chunk)
	}

	intervals := make([]msInterval, 0, len(raws))
	for i, r := range raws {
		if math.IsNaN(r.Start) || math.IsNaN(r.End) || math.IsInf(r.Start, 0) || math.IsInf(r.End, 0) {
			return Result{}, fmt.Errorf("%w: record %d has non-finite bounds", ErrInvalidSegment, i)
		}
		if r.Start < 0 {
			return Result{}, fmt.Errorf("%w: record %d starts before zero (%v)", ErrInvalidSegment, i, r.Start)
		}
		intervals = append(intervals, msInterval{start: toMillis(r.Start), end: toMillis(r.End), label: r.Label})
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	res := Result{Speakers: NewIdentityMap()}
	for _, iv := range intervals {
		id := res.Speakers.Assign(iv.label)

		dur := iv.end - iv.start
		if dur <= 0 {
			res.Dropped++
			continue
		}

		n := (dur + chunkMs - 1) / chunkMs
		for i := int64(0); i < n; i++ {
			s := iv.start + i*chunkMs
			res.Segments = append(res.Segments, Segment{
				Start:   fromMillis(s),
				End:     fromMillis(s + chunkMs),
				Speaker: id,
			})
		}
	}

	if opts.ExpectedSpeakers > 0 && res.Speakers.Len() != opts.ExpectedSpeakers {
		res.Warning = fmt.Sprintf("expected %d speakers but detected %d", opts.ExpectedSpeakers, res.Speakers.Len())
	}

	return res, nil
}

// FromSegments lifts an existing timeline back into raw form, using the
// speaker ID as the label.
func FromSegments(segs []Segment) []Raw {
	raws := make([]Raw, len(segs))
	for i, s := range segs {
		raws[i] = Raw{Start: s.Start, End: s.End, Label: strconv.Itoa(s.Speaker)}
	}
	return raws
}

func toMillis(sec float64) int64 {
	return int64(math.Round(sec * 1000))
}

func fromMillis(ms int64) float64 {
	return float64(ms) / 1000
}
