// Package reorder assigns day and order positions to the places of a trip.
//
// Every function works on a copy of its input and returns the complete new
// list. After any of them runs, the orders inside each day form exactly 1..N.
package reorder

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotContiguous reports a day whose orders are not exactly 1..N.
var ErrNotContiguous = errors.New("orders within a day are not contiguous")

// Item is the positional part of a place.
type Item struct {
	ID    string
	Day   int
	Order int
}

// Target is where a dragged place was dropped: a day container (Day) or
// another place (PlaceID). PlaceID wins when both are set.
type Target struct {
	Day     int
	PlaceID string
}

func DayTarget(day int) Target {
	return Target{Day: day}
}

func PlaceTarget(id string) Target {
	return Target{PlaceID: id}
}

func (t Target) IsPlace() bool {
	return t.PlaceID != ""
}

// Result of a drag. Items is the full list sorted by (day, order); Changed holds
// only the items whose position differs from the input.
type Result struct {
	Items   []Item
	Changed []Item
}

// NoOp reports whether the drag left every position untouched.
func (r Result) NoOp() bool {
	return len(r.Changed) == 0
}

// Apply moves activeID to target. totalDays bounds day containers; a value
// below 1 disables the bound. Unknown ids, out-of-range days and drops that
// land on the current position return the input unchanged.
func Apply(items []Item, activeID string, target Target, totalDays int) Result {
	out := clone(items)
	Sort(out)
	unchanged := Result{Items: out}

	ai := indexOf(out, activeID)
	if ai < 0 {
		return unchanged
	}
	src := out[ai]

	if target.IsPlace() {
		if target.PlaceID == activeID {
			return unchanged
		}
		pi := indexOf(out, target.PlaceID)
		if pi < 0 {
			return unchanged
		}
		p := out[pi]
		if p.Day != src.Day {
			insertBefore(out, ai, p)
		} else {
			moveWithinDay(out, activeID, p.ID, src.Day)
		}
	} else {
		day := target.Day
		if day < 1 || (totalDays > 0 && day > totalDays) || day == src.Day {
			return unchanged
		}
		appendToDay(out, ai, day)
	}

	Sort(out)
	return Result{Items: out, Changed: Changed(items, out)}
}

// appendToDay puts out[ai] at the end of day and closes the gap it left.
func appendToDay(out []Item, ai int, day int) {
	src := out[ai]
	count := 0
	for i := range out {
		if out[i].Day == day {
			count++
		}
	}
	closeGap(out, ai, src.Day, src.Order)
	out[ai].Day = day
	out[ai].Order = count + 1
}

// insertBefore moves out[ai] into p's day at p's position, shifting p and
// everything after it down by one.
func insertBefore(out []Item, ai int, p Item) {
	src := out[ai]
	closeGap(out, ai, src.Day, src.Order)
	for i := range out {
		if i != ai && out[i].Day == p.Day && out[i].Order >= p.Order {
			out[i].Order++
		}
	}
	out[ai].Day = p.Day
	out[ai].Order = p.Order
}

// moveWithinDay removes activeID from the day's sequence and reinserts it at
// the index targetID occupied, then renumbers the day.
func moveWithinDay(out []Item, activeID, targetID string, day int) {
	seq := dayIndexes(out, day)
	from, to := -1, -1
	for pos, i := range seq {
		switch out[i].ID {
		case activeID:
			from = pos
		case targetID:
			to = pos
		}
	}
	if from < 0 || to < 0 || from == to {
		return
	}

	moved := seq[from]
	seq = append(seq[:from], seq[from+1:]...)
	seq = append(seq[:to], append([]int{moved}, seq[to:]...)...)

	for pos, i := range seq {
		out[i].Order = pos + 1
	}
}

// closeGap decrements every other item of day ordered after order.
func closeGap(out []Item, skip int, day, order int) {
	for i := range out {
		if i != skip && out[i].Day == day && out[i].Order > order {
			out[i].Order--
		}
	}
}

// Insert adds item to its day. An order of 0 or past the end appends; otherwise
// the items at and after that order shift down.
func Insert(items []Item, item Item) []Item {
	out := clone(items)
	count := countDay(out, item.Day)
	if item.Order < 1 || item.Order > count+1 {
		item.Order = count + 1
	}
	for i := range out {
		if out[i].Day == item.Day && out[i].Order >= item.Order {
			out[i].Order++
		}
	}
	out = append(out, item)
	Sort(out)
	return out
}

// Remove deletes id and closes the gap in its day.
func Remove(items []Item, id string) []Item {
	out := clone(items)
	ri := indexOf(out, id)
	if ri < 0 {
		Sort(out)
		return out
	}
	gone := out[ri]
	closeGap(out, ri, gone.Day, gone.Order)
	out = append(out[:ri], out[ri+1:]...)
	Sort(out)
	return out
}

// Place moves id to an explicit day and order, clamping order to the end of
// the target day.
func Place(items []Item, id string, day, order int) []Item {
	ri := indexOf(items, id)
	if ri < 0 {
		out := clone(items)
		Sort(out)
		return out
	}
	cur := items[ri]
	if cur.Day == day && cur.Order == order {
		out := clone(items)
		Sort(out)
		return out
	}
	rest := Remove(items, id)
	return Insert(rest, Item{ID: id, Day: day, Order: order})
}

// Normalize renumbers every day to 1..N keeping the current relative order.
// Ties are broken by id so the result is deterministic.
func Normalize(items []Item) []Item {
	out := clone(items)
	Sort(out)
	pos := map[int]int{}
	for i := range out {
		pos[out[i].Day]++
		out[i].Order = pos[out[i].Day]
	}
	return out
}

// Validate checks that ids are unique and every day holds orders 1..N.
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	orders := map[int][]int{}
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate place %s", it.ID)
		}
		seen[it.ID] = struct{}{}
		orders[it.Day] = append(orders[it.Day], it.Order)
	}

	for day, list := range orders {
		sort.Ints(list)
		for i, o := range list {
			if o != i+1 {
				return fmt.Errorf("%w: day %d has order %d at position %d", ErrNotContiguous, day, o, i+1)
			}
		}
	}
	return nil
}

// Changed returns the items of after whose position differs from before,
// including items that before did not contain.
func Changed(before, after []Item) []Item {
	prev := make(map[string]Item, len(before))
	for _, it := range before {
		prev[it.ID] = it
	}
	var changed []Item
	for _, it := range after {
		if old, ok := prev[it.ID]; !ok || old.Day != it.Day || old.Order != it.Order {
			changed = append(changed, it)
		}
	}
	return changed
}

// Sort orders items by day, then order, then id.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Day != items[j].Day {
			return items[i].Day < items[j].Day
		}
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
}

// ByDay groups items per day, each group sorted by order.
func ByDay(items []Item) map[int][]Item {
	out := clone(items)
	Sort(out)
	groups := map[int][]Item{}
	for _, it := range out {
		groups[it.Day] = append(groups[it.Day], it)
	}
	return groups
}

func dayIndexes(items []Item, day int) []int {
	var idx []int
	for i := range items {
		if items[i].Day == day {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].Order < items[idx[b]].Order
	})
	return idx
}

func countDay(items []Item, day int) int {
	n := 0
	for i := range items {
		if items[i].Day == day {
			n++
		}
	}
	return n
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
