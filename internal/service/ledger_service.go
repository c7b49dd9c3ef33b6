package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/report"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var (
	errAuthRequired = errors.New("authentication required")
	errNotOwner     = errors.New("you must own this ledger")
)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	store     storage.LedgerStore
	engine    *calculator.Engine
	metrics   *metrics.Metrics
	validator *requestValidator
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService. m must not be nil.
func NewLedgerService(store storage.LedgerStore, engine *calculator.Engine, m *metrics.Metrics) *LedgerService {
	if engine == nil {
		engine = calculator.NewDefaultEngine()
	}
	return &LedgerService{
		store:     store,
		engine:    engine,
		metrics:   m,
		validator: newRequestValidator(),
	}
}

// CreateLedger creates an empty ledger owned by the caller.
func (s *LedgerService) CreateLedger(ctx context.Context, req *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}

	slog.Info("CreateLedger request received", "name", req.Msg.Name, "user_id", userID)

	ledger := &models.Ledger{
		Name:    strings.TrimSpace(req.Msg.Name),
		OwnerID: userID,
	}
	if err := s.store.CreateLedger(ctx, ledger); err != nil {
		slog.Error("CreateLedger failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Ledger created", "ledger_id", ledger.ID, "name", ledger.Name)

	return connect.NewResponse(&api.CreateLedgerResponse{
		Ledger: toAPILedger(ledger, 0),
	}), nil
}

// GetLedger retrieves a ledger with its transaction count.
func (s *LedgerService) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountTransactions(ctx, ledger.ID)
	if err != nil {
		slog.Error("CountTransactions failed", "ledger_id", ledger.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetLedgerResponse{
		Ledger: toAPILedger(ledger, count),
	}), nil
}

// ListLedgers returns the caller's ledgers, newest first.
func (s *LedgerService) ListLedgers(ctx context.Context, req *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	ledgers, err := s.store.ListLedgersByOwner(ctx, userID)
	if err != nil {
		slog.Error("ListLedgers failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Ledger, len(ledgers))
	for i, ledger := range ledgers {
		count, err := s.store.CountTransactions(ctx, ledger.ID)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		out[i] = toAPILedger(ledger, count)
	}

	slog.Info("ListLedgers successful", "user_id", userID, "count", len(out))

	return connect.NewResponse(&api.ListLedgersResponse{Ledgers: out}), nil
}

// DeleteLedger removes a ledger and all of its transactions.
func (s *LedgerService) DeleteLedger(ctx context.Context, req *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteLedger(ctx, ledger.ID); err != nil {
		slog.Error("DeleteLedger failed", "ledger_id", ledger.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Ledger deleted", "ledger_id", ledger.ID)
	return connect.NewResponse(&api.DeleteLedgerResponse{}), nil
}

// AddTransaction validates one payment and appends it to the ledger.
// A rejected transaction leaves the ledger unchanged.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	t, err := calculator.NewTransaction(req.Msg.Payer, req.Msg.Payee, req.Msg.Amount)
	if err != nil {
		slog.Warn("AddTransaction rejected", "ledger_id", ledger.ID, "error", err)
		return nil, engineError(err)
	}

	record := &models.Transaction{
		Payer:  t.Payer,
		Payee:  t.Payee,
		Amount: t.Amount,
		Note:   strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.AppendTransactions(ctx, ledger.ID, []*models.Transaction{record}); err != nil {
		slog.Error("AddTransaction failed", "ledger_id", ledger.ID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.TransactionsRecorded.Inc()

	slog.Info("Transaction recorded",
		"ledger_id", ledger.ID,
		"seq", record.Seq,
		"payer", record.Payer,
		"payee", record.Payee,
		"amount", record.Amount.String(),
	)

	return connect.NewResponse(&api.AddTransactionResponse{
		Transaction: toAPITransaction(record),
	}), nil
}

// AddExpense splits an expense among its participants and appends one
// transaction per participant who owes the payer.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	expense := calculator.Expense{
		Payer:        req.Msg.Payer,
		Total:        req.Msg.Total,
		Subtotal:     req.Msg.Subtotal,
		Participants: req.Msg.ParticipantIDs,
	}
	if expense.Subtotal.IsZero() {
		expense.Subtotal = expense.Total
	}
	for _, item := range req.Msg.Items {
		expense.Items = append(expense.Items, calculator.Item{
			Description: item.Description,
			Amount:      item.Amount,
			AssignedTo:  item.ParticipantIDs,
		})
	}

	txns, err := calculator.SplitExpense(expense)
	if err != nil {
		slog.Warn("AddExpense rejected", "ledger_id", ledger.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	note := strings.TrimSpace(req.Msg.Note)
	records := make([]*models.Transaction, len(txns))
	for i, t := range txns {
		records[i] = &models.Transaction{Payer: t.Payer, Payee: t.Payee, Amount: t.Amount, Note: note}
	}
	if len(records) > 0 {
		if err := s.store.AppendTransactions(ctx, ledger.ID, records); err != nil {
			slog.Error("AddExpense failed", "ledger_id", ledger.ID, "error", err)
			return nil, storeError(err)
		}
		s.metrics.TransactionsRecorded.Add(float64(len(records)))
	}

	slog.Info("Expense recorded",
		"ledger_id", ledger.ID,
		"payer", expense.Payer,
		"total", expense.Total.String(),
		"transactions", len(records),
	)

	return connect.NewResponse(&api.AddExpenseResponse{
		Transactions: toAPITransactions(records),
	}), nil
}

// ListTransactions returns the ledger in recording order.
func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactions(ctx, ledger.ID)
	if err != nil {
		slog.Error("ListTransactions failed", "ledger_id", ledger.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListTransactionsResponse{
		Transactions: toAPITransactions(txns),
	}), nil
}

// GetBalances aggregates the ledger into net balances.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactions(ctx, ledger.ID)
	if err != nil {
		slog.Error("GetBalances failed", "ledger_id", ledger.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	balances, err := s.engine.Aggregate(models.CalculatorTransactions(txns))
	if err != nil {
		slog.Error("Aggregate failed", "ledger_id", ledger.ID, "error", err)
		return nil, engineError(err)
	}

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances: toAPIBalances(balances),
	}), nil
}

// ComputeSettlement aggregates the ledger, settles the balances and checks
// that the plan brings every participant back to zero.
func (s *LedgerService) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactions(ctx, ledger.ID)
	if err != nil {
		slog.Error("ComputeSettlement failed", "ledger_id", ledger.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	start := time.Now()
	balances, plan, err := s.engine.Compute(models.CalculatorTransactions(txns))
	if err == nil {
		err = s.engine.Verify(balances, plan)
	}
	s.metrics.ObserveSettlement(len(plan), time.Since(start), err)
	if err != nil {
		slog.Error("Settlement failed", "ledger_id", ledger.ID, "transactions", len(txns), "error", err)
		return nil, engineError(err)
	}

	slog.Info("Settlement computed",
		"ledger_id", ledger.ID,
		"transactions", len(txns),
		"participants", balances.Len(),
		"transfers", len(plan),
	)

	return connect.NewResponse(&api.ComputeSettlementResponse{
		Balances:  toAPIBalances(balances),
		Transfers: toAPITransfers(plan),
		Report:    report.PlanText(plan),
	}), nil
}

// ResetLedger removes every transaction and keeps the ledger.
func (s *LedgerService) ResetLedger(ctx context.Context, req *connect.Request[api.ResetLedgerRequest]) (*connect.Response[api.ResetLedgerResponse], error) {
	if err := s.validator.check(req.Msg); err != nil {
		return nil, err
	}
	ledger, err := s.ownedLedger(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	removed, err := s.store.ResetLedger(ctx, ledger.ID)
	if err != nil {
		slog.Error("ResetLedger failed", "ledger_id", ledger.ID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.LedgerResets.Inc()

	slog.Info("Ledger reset", "ledger_id", ledger.ID, "removed", removed)
	return connect.NewResponse(&api.ResetLedgerResponse{Removed: removed}), nil
}

// ownedLedger loads a ledger and checks that the caller owns it.
func (s *LedgerService) ownedLedger(ctx context.Context, ledgerID string) (*models.Ledger, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	ledger, err := s.store.GetLedger(ctx, ledgerID)
	if err != nil {
		slog.Warn("GetLedger failed", "ledger_id", ledgerID, "error", err)
		return nil, storeError(err)
	}
	if ledger.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return ledger, nil
}

// engineError maps settlement engine errors to Connect codes.
func engineError(err error) error {
	switch {
	case errors.Is(err, calculator.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, calculator.ErrTooManyParticipants):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, calculator.ErrInvariantViolation):
		return connect.NewError(connect.CodeInternal, fmt.Errorf("settlement aborted: %w", err))
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
