package layout

import (
	"cmp"
	"slices"
)

// Packing is the slot assignment of one week's segments.
type Packing struct {
	// Layers holds the segments of each slot, sorted by start day.
	Layers [][]Segment
	// Depth is, per day, the highest slot covering it plus one.
	Depth [7]int
}

// Slots returns the number of slots used.
func (p Packing) Slots() int { return len(p.Layers) }

// AreaHeight is the vertical space the overlay bars need.
func (p Packing) AreaHeight(rowSpacing int) int {
	return max(0, len(p.Layers)*rowSpacing)
}

// SlotOf returns the slot assigned to the segment with id.
func (p Packing) SlotOf(id string) (int, bool) {
	for slot, layer := range p.Layers {
		for _, s := range layer {
			if s.ID == id {
				return slot, true
			}
		}
	}
	return 0, false
}

// Pack assigns every segment the lowest slot in which it overlaps nothing.
// Longer segments are placed first, then earlier ones; event and segment ids
// break remaining ties so the result does not depend on input order.
func Pack(segments []Segment) Packing {
	sorted := slices.Clone(segments)
	slices.SortStableFunc(sorted, func(a, b Segment) int {
		if c := cmp.Compare(b.Days(), a.Days()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.StartDay, b.StartDay); c != 0 {
			return c
		}
		if c := cmp.Compare(a.EventID, b.EventID); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	var p Packing
	var occupied [][7]bool
	for _, seg := range sorted {
		slot := 0
		for ; slot < len(occupied); slot++ {
			if free(occupied[slot], seg) {
				break
			}
		}
		if slot == len(occupied) {
			occupied = append(occupied, [7]bool{})
			p.Layers = append(p.Layers, nil)
		}

		seg.Slot = slot
		for d := seg.StartDay; d <= seg.EndDay; d++ {
			occupied[slot][d] = true
			p.Depth[d] = max(p.Depth[d], slot+1)
		}
		p.Layers[slot] = append(p.Layers[slot], seg)
	}

	for _, layer := range p.Layers {
		slices.SortStableFunc(layer, func(a, b Segment) int {
			return cmp.Compare(a.StartDay, b.StartDay)
		})
	}
	return p
}

func free(days [7]bool, seg Segment) bool {
	for d := seg.StartDay; d <= seg.EndDay; d++ {
		if days[d] {
			return false
		}
	}
	return true
}
