package calculator

import (
	"github.com/shopspring/decimal"
)

// Settle reduces net balances to a settlement plan.
//
// Algorithm (greedy extremal pairing):
//   - every exactly nonzero balance is queued, dust included
//   - pop the greatest debtor and the greatest creditor
//   - the debtor pays min(debt, credit) to the creditor
//   - whoever still has a nonzero balance goes back in the queue
//
// At least one party leaves the queue per step, so the plan holds at most
// n-1 transfers for n participants with a nonzero balance. Equal magnitudes
// are taken in first-appearance order. When one side runs dry the other
// side holds exactly the balance sum, which the tolerance check bounds.
//
// Transfers no larger than the tolerance are then dropped when doing so
// keeps both parties within tolerance of zero.
//
// Balances that do not sum to zero within tolerance are rejected with an
// *InvariantViolation.
func (e *Engine) Settle(b *Balances) (Plan, error) {
	sum := b.Sum()
	if e.significant(sum) {
		return nil, &InvariantViolation{Sum: sum, Tolerance: e.cfg.Tolerance}
	}
	if err := e.checkSize(b.Len()); err != nil {
		return nil, err
	}

	q := newSettlementQueue(b.Len())
	for seq, m := range b.Members() {
		q.push(m.Participant, m.Net, seq)
	}

	plan := make(Plan, 0, max(0, b.Outstanding(decimal.Zero)-1))
	for q.ready() {
		debtor, creditor := q.popExtremes()

		amount := decimal.Min(debtor.amount, creditor.amount)
		plan = append(plan, Transfer{
			Payer:  debtor.participant,
			Amount: amount,
			Payee:  creditor.participant,
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if !debtor.amount.IsZero() {
			q.requeueDebtor(debtor)
		}
		if !creditor.amount.IsZero() {
			q.requeueCreditor(creditor)
		}
	}

	return e.dropDust(b, plan), nil
}

// dropDust removes transfers of at most the tolerance whose absence leaves
// both the payer and the payee within tolerance of zero. Residuals are
// tracked across drops so dust cannot pile up on one participant.
func (e *Engine) dropDust(b *Balances, plan Plan) Plan {
	residual := Apply(b, plan)
	kept := plan[:0]
	for _, t := range plan {
		if !e.significant(t.Amount) {
			payer := residual[t.Payer].Sub(t.Amount)
			payee := residual[t.Payee].Add(t.Amount)
			if !e.significant(payer) && !e.significant(payee) {
				residual[t.Payer] = payer
				residual[t.Payee] = payee
				continue
			}
		}
		kept = append(kept, t)
	}
	return kept
}

// Apply replays a plan against balances and returns what is left for each
// participant: the payer of a transfer moves up by its amount and the payee
// moves down. A correct plan leaves every participant at zero.
func Apply(b *Balances, plan Plan) map[string]decimal.Decimal {
	residual := b.Map()
	for _, t := range plan {
		residual[t.Payer] = residual[t.Payer].Add(t.Amount)
		residual[t.Payee] = residual[t.Payee].Sub(t.Amount)
	}
	return residual
}

// Verify checks that the plan zeroes every balance within tolerance.
func (e *Engine) Verify(b *Balances, plan Plan) error {
	residual := Apply(b, plan)
	// Walk in balance order so the reported participant is deterministic.
	for _, m := range b.Members() {
		if left := residual[m.Participant]; e.significant(left) {
			return &InvariantViolation{Sum: left, Tolerance: e.cfg.Tolerance, Participant: m.Participant}
		}
		delete(residual, m.Participant)
	}
	for _, t := range plan {
		if left, ok := residual[t.Payer]; ok && e.significant(left) {
			return &InvariantViolation{Sum: left, Tolerance: e.cfg.Tolerance, Participant: t.Payer}
		}
		if left, ok := residual[t.Payee]; ok && e.significant(left) {
			return &InvariantViolation{Sum: left, Tolerance: e.cfg.Tolerance, Participant: t.Payee}
		}
	}
	return nil
}
