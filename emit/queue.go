package emit

import "container/heap"

// queue is the traversal work-list, popped in ascending id order.
type queue struct {
	h nodeHeap
}

func (q *queue) push(n *node) { heap.Push(&q.h, n) }
func (q *queue) pop() *node   { return heap.Pop(&q.h).(*node) }
func (q *queue) len() int     { return len(q.h) }

type nodeHeap []*node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].id.Less(h[j].id) }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}
