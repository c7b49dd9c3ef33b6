package calculator

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(payer, payee, amount string) Transaction {
	return Transaction{Payer: payer, Payee: payee, Amount: d(amount)}
}

func net(participant, amount string) MemberBalance {
	return MemberBalance{Participant: participant, Net: d(amount)}
}

// planString renders a plan compactly for equality checks.
func planString(p Plan) []string {
	out := make([]string, len(p))
	for i, t := range p {
		out[i] = fmt.Sprintf("%s->%s:%s", t.Payer, t.Payee, t.Amount.String())
	}
	return out
}

func TestAggregate(t *testing.T) {
	engine := NewDefaultEngine()

	balances, err := engine.Aggregate([]Transaction{
		tx("A", "B", "10"),
		tx("B", "C", "10"),
		tx("A", "C", "5"),
	})
	require.NoError(t, err)

	assert.True(t, balances.Net("A").Equal(d("-15")))
	assert.True(t, balances.Net("B").IsZero())
	assert.True(t, balances.Net("C").Equal(d("15")))
	assert.True(t, balances.Sum().IsZero())

	members := balances.Members()
	require.Len(t, members, 3)
	assert.Equal(t, []string{"A", "B", "C"},
		[]string{members[0].Participant, members[1].Participant, members[2].Participant})
	assert.True(t, members[0].Paid.Equal(d("15")))
	assert.True(t, members[1].Received.Equal(d("10")))
	assert.True(t, members[1].Paid.Equal(d("10")))
}

func TestAggregate_TrimsIdentifiers(t *testing.T) {
	balances, err := NewDefaultEngine().Aggregate([]Transaction{
		tx(" A", "B ", "4"),
		tx("A", "B", "1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, balances.Len())
	assert.True(t, balances.Net("A").Equal(d("-5")))
}

func TestAggregate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		txns      []Transaction
		wantIndex int
		wantField string
	}{
		{"self payment", []Transaction{tx("A", "B", "1"), tx("A", "A", "5")}, 1, "payee"},
		{"zero amount", []Transaction{tx("A", "B", "0")}, 0, "amount"},
		{"negative amount", []Transaction{tx("A", "B", "2"), tx("B", "C", "1"), tx("C", "A", "-3")}, 2, "amount"},
		{"missing payer", []Transaction{tx("", "B", "1")}, 0, "payer"},
		{"blank payee", []Transaction{tx("A", "  ", "1")}, 0, "payee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultEngine().Aggregate(tt.txns)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantIndex, verr.Index)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNewTransaction(t *testing.T) {
	_, err := NewTransaction("A", "A", d("5"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewTransaction("A", "B", d("0"))
	assert.ErrorIs(t, err, ErrValidation)

	got, err := NewTransaction(" A ", "B", d("5"))
	require.NoError(t, err)
	assert.Equal(t, "A", got.Payer)
}

func TestSettle_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		txns []Transaction
		want []string
	}{
		{
			name: "settled participant is excluded",
			txns: []Transaction{tx("A", "B", "10"), tx("B", "C", "10"), tx("A", "C", "5")},
			want: []string{"A->C:15"},
		},
		{
			name: "one creditor against two debtors",
			txns: []Transaction{tx("A", "B", "20"), tx("C", "A", "10")},
			want: []string{"A->B:10", "C->B:10"},
		},
		{
			name: "reversed transactions cancel out",
			txns: []Transaction{tx("A", "B", "10"), tx("B", "A", "10")},
			want: []string{},
		},
		{
			name: "empty ledger",
			txns: nil,
			want: []string{},
		},
		{
			name: "largest debtor pays largest creditor first",
			txns: []Transaction{tx("A", "X", "30"), tx("B", "Y", "10"), tx("B", "X", "5")},
			want: []string{"A->X:30", "B->Y:10", "B->X:5"},
		},
		{
			name: "chain collapses to one payment",
			txns: []Transaction{tx("A", "B", "7"), tx("B", "C", "7"), tx("C", "D", "7")},
			want: []string{"A->D:7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, plan, err := NewDefaultEngine().Compute(tt.txns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, planString(plan))
		})
	}
}

func TestSettle_TieBreakFollowsInsertionOrder(t *testing.T) {
	engine := NewDefaultEngine()

	plan, err := engine.Settle(NewBalances(net("A", "-5"), net("B", "-5"), net("C", "10")))
	require.NoError(t, err)
	assert.Equal(t, []string{"A->C:5", "B->C:5"}, planString(plan))

	plan, err = engine.Settle(NewBalances(net("B", "-5"), net("A", "-5"), net("C", "10")))
	require.NoError(t, err)
	assert.Equal(t, []string{"B->C:5", "A->C:5"}, planString(plan))
}

func TestSettle_InvariantViolation(t *testing.T) {
	_, err := NewDefaultEngine().Settle(NewBalances(net("A", "-10"), net("B", "5")))
	require.ErrorIs(t, err, ErrInvariantViolation)

	var iv *InvariantViolation
	require.True(t, errors.As(err, &iv))
	assert.True(t, iv.Sum.Equal(d("-5")))
}

func TestSettle_ZeroBalancesDoNotError(t *testing.T) {
	plan, err := NewDefaultEngine().Settle(NewBalances(net("A", "0"), net("B", "0")))
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestSettle_Dust(t *testing.T) {
	engine := NewDefaultEngine()

	t.Run("fractional amounts net out exactly", func(t *testing.T) {
		// 0.1 + 0.2 != 0.3 in binary floating point.
		_, plan, err := engine.Compute([]Transaction{
			{Payer: "A", Payee: "B", Amount: decimal.NewFromFloat(0.1)},
			{Payer: "A", Payee: "B", Amount: decimal.NewFromFloat(0.2)},
			{Payer: "B", Payee: "A", Amount: decimal.NewFromFloat(0.3)},
		})
		require.NoError(t, err)
		assert.Empty(t, plan)
	})

	t.Run("dust balances are excluded", func(t *testing.T) {
		plan, err := engine.Settle(NewBalances(
			net("A", "-10"),
			net("B", "3.3333333333"),
			net("C", "6.6666666667"),
			net("D", "0.000000000001"),
			net("E", "-0.000000000001"),
		))
		require.NoError(t, err)
		assert.Equal(t, []string{"A->C:6.6666666667", "A->B:3.3333333333"}, planString(plan))
	})

	t.Run("residue within tolerance produces no extra transfer", func(t *testing.T) {
		plan, err := engine.Settle(NewBalances(net("A", "-10"), net("B", "10.0000000000005")))
		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.True(t, plan[0].Amount.Equal(d("10")))
		assert.NoError(t, engine.Verify(NewBalances(net("A", "-10"), net("B", "10.0000000000005")), plan))
	})

	t.Run("thirds split across three creditors", func(t *testing.T) {
		third := d("10").Div(d("3"))
		balances := NewBalances(
			MemberBalance{Participant: "A", Net: d("-10")},
			MemberBalance{Participant: "B", Net: third},
			MemberBalance{Participant: "C", Net: third},
			MemberBalance{Participant: "D", Net: d("10").Sub(third).Sub(third)},
		)
		plan, err := engine.Settle(balances)
		require.NoError(t, err)
		assert.Len(t, plan, 3)
		for _, tr := range plan {
			assert.True(t, tr.Amount.GreaterThan(engine.Tolerance()), "dust transfer %s", tr.Amount)
		}
		assert.NoError(t, engine.Verify(balances, plan))
	})
}

func TestSettle_CumulativeDust(t *testing.T) {
	t.Run("dust creditors offset one real debtor", func(t *testing.T) {
		engine := NewEngine(Config{Tolerance: d("0.01")})
		balances, plan, err := engine.Compute([]Transaction{
			tx("A", "B", "0.01"),
			tx("A", "C", "0.01"),
			tx("A", "D", "0.01"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A->C:0.01", "A->D:0.01"}, planString(plan))
		require.NoError(t, engine.Verify(balances, plan))

		residual := Apply(balances, plan)
		assert.True(t, residual["A"].Equal(d("-0.01")))
		assert.True(t, residual["B"].Equal(d("0.01")))
	})

	t.Run("default tolerance", func(t *testing.T) {
		engine := NewDefaultEngine()
		txns := make([]Transaction, 0, 5)
		for _, who := range []string{"B", "C", "D", "E", "F"} {
			txns = append(txns, tx("A", who, "0.000000001"))
		}
		balances, plan, err := engine.Compute(txns)
		require.NoError(t, err)
		assert.Len(t, plan, 4)
		require.NoError(t, engine.Verify(balances, plan))
	})

	t.Run("dust debtors against a real creditor", func(t *testing.T) {
		engine := NewEngine(Config{Tolerance: d("0.005")})
		balances := NewBalances(
			net("A", "-0.005"),
			net("B", "-0.005"),
			net("C", "-0.005"),
			net("D", "-0.005"),
			net("E", "0.02"),
		)
		plan, err := engine.Settle(balances)
		require.NoError(t, err)
		assert.Len(t, plan, 3)
		require.NoError(t, engine.Verify(balances, plan))
	})
}

func TestSettle_TooManyParticipants(t *testing.T) {
	engine := NewEngine(Config{Tolerance: DefaultTolerance, MaxParticipants: 2})

	_, err := engine.Aggregate([]Transaction{tx("A", "B", "1"), tx("B", "C", "1")})
	assert.ErrorIs(t, err, ErrTooManyParticipants)

	_, err = engine.Settle(NewBalances(net("A", "-2"), net("B", "1"), net("C", "1")))
	assert.ErrorIs(t, err, ErrTooManyParticipants)
}

func TestNewEngine_NegativeToleranceFallsBack(t *testing.T) {
	engine := NewEngine(Config{Tolerance: d("-1")})
	assert.True(t, engine.Tolerance().Equal(DefaultTolerance))
}

func TestVerify_DetectsBrokenPlan(t *testing.T) {
	engine := NewDefaultEngine()
	balances := NewBalances(net("A", "-10"), net("B", "10"))

	err := engine.Verify(balances, Plan{{Payer: "A", Amount: d("4"), Payee: "B"}})
	require.ErrorIs(t, err, ErrInvariantViolation)

	var iv *InvariantViolation
	require.True(t, errors.As(err, &iv))
	assert.Equal(t, "A", iv.Participant)

	err = engine.Verify(balances, Plan{{Payer: "A", Amount: d("10"), Payee: "Z"}})
	require.ErrorIs(t, err, ErrInvariantViolation)
}

// randomLedger builds a ledger over a small population so that many
// participants end up with offsetting balances.
func randomLedger(r *rand.Rand, people, size int) []Transaction {
	txns := make([]Transaction, 0, size)
	for len(txns) < size {
		payer := fmt.Sprintf("p%d", r.Intn(people))
		payee := fmt.Sprintf("p%d", r.Intn(people))
		if payer == payee {
			continue
		}
		cents := int64(r.Intn(100000) + 1)
		txns = append(txns, Transaction{Payer: payer, Payee: payee, Amount: decimal.New(cents, -2)})
	}
	return txns
}

func TestSettle_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	engine := NewDefaultEngine()

	for i := 0; i < 200; i++ {
		txns := randomLedger(r, 2+r.Intn(12), 1+r.Intn(40))

		balances, plan, err := engine.Compute(txns)
		require.NoError(t, err)

		// Conservation.
		require.True(t, balances.Sum().IsZero(), "iteration %d: sum %s", i, balances.Sum())

		// Settlement correctness.
		for who, left := range Apply(balances, plan) {
			require.True(t, left.IsZero(), "iteration %d: %s left with %s", i, who, left)
		}
		require.NoError(t, engine.Verify(balances, plan))

		// Minimality bound.
		require.LessOrEqual(t, len(plan), max(0, balances.Outstanding(decimal.Zero)-1), "iteration %d", i)

		// Every transfer moves a real amount from a debtor to a creditor.
		for _, tr := range plan {
			require.True(t, tr.Amount.IsPositive())
			require.True(t, balances.Net(tr.Payer).IsNegative())
			require.True(t, balances.Net(tr.Payee).IsPositive())
		}

		// Idempotence.
		_, again, err := engine.Compute(txns)
		require.NoError(t, err)
		require.Equal(t, planString(plan), planString(again))
	}
}

func TestPlanTotal(t *testing.T) {
	plan := Plan{{Payer: "A", Amount: d("1.25"), Payee: "B"}, {Payer: "C", Amount: d("2"), Payee: "B"}}
	assert.True(t, plan.Total().Equal(d("3.25")))
	assert.True(t, Plan(nil).Total().IsZero())
}
