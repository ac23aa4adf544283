package model

// Request is a single passenger demand unit.
type Request struct {
	Dir   Direction `json:"dir"`
	Ready int       `json:"ready"` // minutes from horizon start
}

// DemandPool keeps requests in the order they were read.
type DemandPool struct {
	Requests []Request `json:"requests"`
}

// Len returns the number of requests.
func (d DemandPool) Len() int { return len(d.Requests) }

// CountByDirection splits the pool by travel direction.
func (d DemandPool) CountByDirection() map[Direction]int {
	out := map[Direction]int{DirOutbound: 0, DirReturn: 0}
	for _, r := range d.Requests {
		out[r.Dir]++
	}
	return out
}

// SlotCounts buckets requests into slots of slotLen minutes over a horizon of
// horizon minutes. Ready times outside [0, horizon] are clamped, so a request
// ready exactly at the horizon lands in the last slot.
func (d DemandPool) SlotCounts(slots, slotLen, horizon int) []int {
	counts := make([]int, slots)
	if slots == 0 || slotLen <= 0 {
		return counts
	}
	for _, r := range d.Requests {
		ready := r.Ready
		if ready < 0 {
			ready = 0
		}
		if ready > horizon {
			ready = horizon
		}
		t := ready / slotLen
		if t >= slots {
			t = slots - 1
		}
		counts[t]++
	}
	return counts
}
