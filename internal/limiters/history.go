package limiters

import "time"

type attempt struct {
	at        time.Time
	succeeded bool
}

// history is a fixed-capacity ring of attempts in insertion order. When full,
// a push overwrites the oldest entry.
type history struct {
	buf   []attempt
	start int
	n     int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = 1
	}
	return &history{buf: make([]attempt, capacity)}
}

func (h *history) push(a attempt) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = a
		h.n++
		return
	}
	h.buf[h.start] = a
	h.start = (h.start + 1) % len(h.buf)
}

func (h *history) len() int {
	return h.n
}

// at returns the i-th oldest retained attempt.
func (h *history) at(i int) attempt {
	return h.buf[(h.start+i)%len(h.buf)]
}

func (h *history) failures() int {
	count := 0
	for i := 0; i < h.n; i++ {
		if !h.at(i).succeeded {
			count++
		}
	}
	return count
}

// dropThrough removes leading entries stamped at or before cutoff and returns
// how many were removed. Entries are chronological, so it stops at the first
// newer one.
func (h *history) dropThrough(cutoff time.Time) int {
	dropped := 0
	for h.n > 0 && !h.buf[h.start].at.After(cutoff) {
		h.buf[h.start] = attempt{}
		h.start = (h.start + 1) % len(h.buf)
		h.n--
		dropped++
	}
	if h.n == 0 {
		h.start = 0
	}
	return dropped
}
