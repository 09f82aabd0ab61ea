package notification

import (
	"container/heap"
	"time"
)

type item struct {
	req      Request
	// due starts at req.FireAt and moves forward on every retry.
	due      time.Time
	attempts int
	index    int
}

func newItem(req Request) *item {
	return &item{req: req, due: req.FireAt}
}

// requestQueue is a min-heap of pending requests ordered by due time.
type requestQueue []*item

func (pq requestQueue) Len() int { return len(pq) }

func (pq requestQueue) Less(i, j int) bool {
	return pq[i].due.Before(pq[j].due)
}

func (pq requestQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *requestQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *requestQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

func (pq requestQueue) Peek() *item {
	if len(pq) == 0 {
		return nil
	}
	return pq[0]
}

func newRequestQueue() *requestQueue {
	pq := &requestQueue{}
	heap.Init(pq)
	return pq
}
