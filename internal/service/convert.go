package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func toAPILedger(l *models.Ledger, transactionCount int) *api.Ledger {
	return &api.Ledger{
		ID:               l.ID,
		Name:             l.Name,
		OwnerID:          l.OwnerID,
		CreatedAt:        l.CreatedAt,
		TransactionCount: transactionCount,
	}
}

func toAPITransaction(t *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:        t.ID,
		Seq:       t.Seq,
		Payer:     t.Payer,
		Payee:     t.Payee,
		Amount:    t.Amount,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}
}

func toAPITransactions(txns []*models.Transaction) []*api.Transaction {
	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t)
	}
	return out
}

func toAPIBalances(b *calculator.Balances) []*api.Balance {
	members := b.Members()
	out := make([]*api.Balance, len(members))
	for i, m := range members {
		out[i] = &api.Balance{
			Participant: m.Participant,
			Net:         m.Net,
			Paid:        m.Paid,
			Received:    m.Received,
		}
	}
	return out
}

func toAPITransfers(plan calculator.Plan) []*api.Transfer {
	out := make([]*api.Transfer, len(plan))
	for i, t := range plan {
		out[i] = &api.Transfer{Payer: t.Payer, Amount: t.Amount, Payee: t.Payee}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
