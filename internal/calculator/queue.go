package calculator

import (
	"container/heap"

	"github.com/shopspring/decimal"
)

// position is a participant waiting in the settlement queue. amount is the
// magnitude still to settle; seq is the participant's first-appearance
// index and breaks ties between equal magnitudes.
type position struct {
	participant string
	amount      decimal.Decimal
	seq         int
}

// extremalQueue is a max-heap of positions by magnitude.
type extremalQueue []*position

func (q extremalQueue) Len() int { return len(q) }

func (q extremalQueue) Less(i, j int) bool {
	if c := q[i].amount.Cmp(q[j].amount); c != 0 {
		return c > 0
	}
	return q[i].seq < q[j].seq
}

func (q extremalQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *extremalQueue) Push(x any) { *q = append(*q, x.(*position)) }

func (q *extremalQueue) Pop() any {
	old := *q
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return p
}

// settlementQueue orders nonzero balances by signed value. Debtors and
// creditors live in separate heaps so that both extremes come out in
// O(log n): the most negative balance is the top debtor and the most
// positive is the top creditor.
type settlementQueue struct {
	debtors   extremalQueue
	creditors extremalQueue
}

func newSettlementQueue(capacity int) *settlementQueue {
	return &settlementQueue{
		debtors:   make(extremalQueue, 0, capacity),
		creditors: make(extremalQueue, 0, capacity),
	}
}

// push queues a signed balance. Zero is ignored.
func (q *settlementQueue) push(participant string, net decimal.Decimal, seq int) {
	switch net.Sign() {
	case -1:
		heap.Push(&q.debtors, &position{participant: participant, amount: net.Neg(), seq: seq})
	case 1:
		heap.Push(&q.creditors, &position{participant: participant, amount: net, seq: seq})
	}
}

// ready reports whether both a debtor and a creditor are waiting.
func (q *settlementQueue) ready() bool {
	return q.debtors.Len() > 0 && q.creditors.Len() > 0
}

// popExtremes removes the greatest debtor and the greatest creditor.
func (q *settlementQueue) popExtremes() (debtor, creditor *position) {
	debtor = heap.Pop(&q.debtors).(*position)
	creditor = heap.Pop(&q.creditors).(*position)
	return debtor, creditor
}

func (q *settlementQueue) requeueDebtor(p *position) { heap.Push(&q.debtors, p) }

func (q *settlementQueue) requeueCreditor(p *position) { heap.Push(&q.creditors, p) }
