// SPDX-License-Identifier: EPL-2.0

package segment

import "github.com/ik5/audedit/buffer"

// Action tells Fill whether to keep walking.
type Action int

const (
	Continue Action = iota
	Stop
)

// Visitor receives a whole segment, its index and the absolute offset of its
// first sample. The segment may extend past the requested window; use
// Overlap to restrict per-sample loops.
type Visitor func(buf *buffer.Buffer, index, offset int) Action

// Overlap converts the absolute window [start, end) into local indices
// [from, to) of a segment of length n starting at offset.
func Overlap(start, end, offset, n int) (int, int) {
	from := max(start-offset, 0)
	to := min(end-offset, n)
	if to < from {
		to = from
	}

	return from, to
}

// Fill visits, in order, every segment overlapping [start, end). With
// reversed set the segments are visited from last to first; the order of
// samples inside a segment is up to the visitor. A visitor returning Stop
// ends the walk.
func (l *List) Fill(visit Visitor, start, end int, reversed bool) {
	start, end = l.clamp(start, end)
	if start >= end {
		return
	}

	bounds := l.Bounds()
	overlaps := func(i int) bool {
		return bounds[i] < end && bounds[i+1] > start
	}

	if reversed {
		for i := len(l.segments) - 1; i >= 0; i-- {
			if bounds[i+1] <= start {
				break
			}
			if overlaps(i) && visit(l.segments[i], i, bounds[i]) == Stop {
				return
			}
		}
		return
	}

	for i := range l.segments {
		if bounds[i] >= end {
			break
		}
		if overlaps(i) && visit(l.segments[i], i, bounds[i]) == Stop {
			return
		}
	}
}
