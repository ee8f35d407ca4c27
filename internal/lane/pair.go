package lane

import (
	"fmt"
	"sort"
)

// LaneEntry is one segment together with its feature.
type LaneEntry struct {
	Segment Segment `json:"segment"`
	Feature Feature `json:"feature"`
}

// LanePair is one hypothesized lane: two entries adjacent in slope order,
// or a single entry when the sorted list had odd length.
type LanePair struct {
	Members []LaneEntry `json:"members"`
}

// Complete reports whether the pair has both boundaries.
func (p LanePair) Complete() bool {
	return len(p.Members) == 2
}

// PairLanes sorts segments ascending by slope and chunks them into
// consecutive pairs.
//
// The sort is stable, so segments with equal slopes keep their detection
// order. When the number of sortable segments is odd the final LanePair has a
// single member. Vertical segments have no slope and are left out; use
// Excluded to recover them.
//
// This is a heuristic: adjacent slopes are assumed to bound the same lane, and
// nothing checks that the two members are parallel, on opposite sides of the
// frame, or near each other. Noisy detections will pair unrelated lines.
//
// segs and feats must be index-aligned (as returned by FeaturizeAll). An empty
// input yields an empty result.
func PairLanes(segs []Segment, feats []Feature) ([]LanePair, error) {
	if len(segs) != len(feats) {
		return nil, fmt.Errorf("%w: %d segments but %d features", ErrInvalidInput, len(segs), len(feats))
	}

	entries := make([]LaneEntry, 0, len(segs))
	for i := range segs {
		if !feats[i].HasSlope() {
			continue
		}
		entries = append(entries, LaneEntry{Segment: segs[i], Feature: feats[i]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Feature.Slope < entries[j].Feature.Slope
	})

	return chunk(entries, 2), nil
}

// Excluded returns the segments PairLanes leaves out, in input order.
func Excluded(segs []Segment, feats []Feature) []Segment {
	out := make([]Segment, 0)
	for i := range segs {
		if i < len(feats) && !feats[i].HasSlope() {
			out = append(out, segs[i])
		}
	}
	return out
}

func chunk(entries []LaneEntry, n int) []LanePair {
	pairs := make([]LanePair, 0, (len(entries)+n-1)/n)
	for i := 0; i < len(entries); i += n {
		end := i + n
		if end > len(entries) {
			end = len(entries)
		}
		members := make([]LaneEntry, end-i)
		copy(members, entries[i:end])
		pairs = append(pairs, LanePair{Members: members})
	}
	return pairs
}
