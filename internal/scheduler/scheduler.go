// Package scheduler provides collision-aware slot finding for tasks.
package scheduler

import (
	"time"

	"github.com/rvalencia/moodplan/internal/calendar"
)

// Default search parameters.
const (
	DefaultBlockMinutes         = 15
	DefaultMeetingBufferMinutes = 20
	DefaultHorizonHours         = 12
)

// Options controls a slot search.
type Options struct {
	BlockMinutes         int  // granularity candidate starts are rounded to
	DurationMinutes      int  // length of the slot being placed
	MeetingBufferMinutes int  // margin around meetings, only used with AvoidMeetings
	HorizonHours         int  // how far forward to search
	AvoidMeetings        bool // keep clear of meeting buffers (rest tasks)
}

// withDefaults fills in zero-valued fields.
func (o Options) withDefaults() Options {
	if o.BlockMinutes <= 0 {
		o.BlockMinutes = DefaultBlockMinutes
	}
	if o.DurationMinutes <= 0 {
		o.DurationMinutes = calendar.DefaultDurationMinutes
	}
	if o.MeetingBufferMinutes <= 0 {
		o.MeetingBufferMinutes = DefaultMeetingBufferMinutes
	}
	if o.HorizonHours <= 0 {
		o.HorizonHours = DefaultHorizonHours
	}
	return o
}

// Slot is the outcome of a search. Degraded marks a best-effort result from an
// exhausted horizon: the time is still usable but may collide.
type Slot struct {
	Start    time.Time
	Degraded bool
}

// FindNextSlot returns the earliest start at or after `after`, rounded to the
// block granularity, whose [start, start+duration) span collides with no busy
// interval. First-fit: on collision the candidate jumps past the end of the
// interval it hit, in ascending start order. With AvoidMeetings set, spans
// inside [meetingStart-buffer, meetingEnd+buffer) are also rejected.
//
// The search never fails. If the horizon is exhausted the rounded horizon
// boundary is returned with Degraded set; callers surface the "may still
// conflict" warning themselves.
func FindNextSlot(busy []calendar.BusyInterval, after time.Time, opts Options) Slot {
	opts = opts.withDefaults()

	block := time.Duration(opts.BlockMinutes) * time.Minute
	duration := time.Duration(opts.DurationMinutes) * time.Minute
	buffer := time.Duration(opts.MeetingBufferMinutes) * time.Minute
	horizon := after.Add(time.Duration(opts.HorizonHours) * time.Hour)

	candidate := roundUpToBlock(after.Add(time.Minute), block)

search:
	for candidate.Before(horizon) {
		span := calendar.BusyInterval{Start: candidate, End: candidate.Add(duration)}

		for _, b := range busy {
			if calendar.Overlaps(span, b) {
				candidate = roundUpToBlock(b.End.Add(time.Minute), block)
				continue search
			}
		}

		if opts.AvoidMeetings {
			for _, b := range busy {
				if !calendar.IsMeetingLabel(b.Label) {
					continue
				}
				buffered := calendar.BusyInterval{Start: b.Start.Add(-buffer), End: b.End.Add(buffer)}
				if calendar.Overlaps(span, buffered) {
					candidate = roundUpToBlock(buffered.End.Add(time.Minute), block)
					continue search
				}
			}
		}

		return Slot{Start: candidate}
	}

	return Slot{Start: roundUpToBlock(horizon, block), Degraded: true}
}

// Resolution is the outcome of resolving a desired time against the busy set.
type Resolution struct {
	Start    time.Time
	Changed  bool // final time differs from the request
	Degraded bool // horizon-exhausted fallback, may still conflict
}

// Resolve confirms a desired time is collision-free or shifts it forward to the
// next available slot. A nil desired time delegates fully to FindNextSlot
// anchored at now. When a shift happens the search is anchored at the desired
// time, not now, so movement is always forward from the request.
func Resolve(busy []calendar.BusyInterval, desired *time.Time, now time.Time, opts Options) Resolution {
	opts = opts.withDefaults()

	if desired == nil {
		slot := FindNextSlot(busy, now, opts)
		return Resolution{Start: slot.Start, Changed: true, Degraded: slot.Degraded}
	}

	cand := desired.Truncate(time.Minute)
	span := calendar.BusyInterval{
		Start: cand,
		End:   cand.Add(time.Duration(opts.DurationMinutes) * time.Minute),
	}

	if fits(span, busy, opts) {
		return Resolution{Start: cand}
	}

	slot := FindNextSlot(busy, cand, opts)
	return Resolution{Start: slot.Start, Changed: true, Degraded: slot.Degraded}
}

// fits reports whether a span clears every busy interval and, when meetings are
// avoided, every meeting buffer.
func fits(span calendar.BusyInterval, busy []calendar.BusyInterval, opts Options) bool {
	for _, b := range busy {
		if calendar.Overlaps(span, b) {
			return false
		}
	}
	if opts.AvoidMeetings {
		buffer := time.Duration(opts.MeetingBufferMinutes) * time.Minute
		for _, b := range busy {
			if !calendar.IsMeetingLabel(b.Label) {
				continue
			}
			buffered := calendar.BusyInterval{Start: b.Start.Add(-buffer), End: b.End.Add(buffer)}
			if calendar.Overlaps(span, buffered) {
				return false
			}
		}
	}
	return true
}

// maxStaggered caps how many alternative slots a caller can request.
const maxStaggered = 5

// Staggered produces up to maxStaggered candidate slots at the given offsets
// from base, each searched independently so offsets represent alternatives
// rather than a forced sequence. Duplicates collapse preserving first-seen
// order; that is expected when several offsets land on the same free slot.
func Staggered(busy []calendar.BusyInterval, base time.Time, offsetsMinutes []int, opts Options) []time.Time {
	var out []time.Time
	seen := make(map[time.Time]bool)

	for _, off := range offsetsMinutes {
		slot := FindNextSlot(busy, base.Add(time.Duration(off)*time.Minute), opts)
		if seen[slot.Start] {
			continue
		}
		seen[slot.Start] = true
		out = append(out, slot.Start)
		if len(out) == maxStaggered {
			break
		}
	}
	return out
}

// roundUpToBlock rounds a time up to the next block boundary. Times already on
// a boundary are left unchanged; rounding never moves backward.
func roundUpToBlock(t time.Time, block time.Duration) time.Time {
	t = t.Truncate(time.Minute)
	rem := time.Duration(t.Minute()) * time.Minute % block
	if rem == 0 {
		return t
	}
	return t.Add(block - rem)
}
