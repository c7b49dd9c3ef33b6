// Package apiconnect wires the settleup.v1 services to Connect handlers and
// clients using the JSON Codec.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "settleup.v1.LedgerService"
)

// These constants are the fully-qualified names of the RPCs defined in LedgerService.
const (
	LedgerServiceCreateLedgerProcedure      = "/settleup.v1.LedgerService/CreateLedger"
	LedgerServiceGetLedgerProcedure         = "/settleup.v1.LedgerService/GetLedger"
	LedgerServiceListLedgersProcedure       = "/settleup.v1.LedgerService/ListLedgers"
	LedgerServiceDeleteLedgerProcedure      = "/settleup.v1.LedgerService/DeleteLedger"
	LedgerServiceAddTransactionProcedure    = "/settleup.v1.LedgerService/AddTransaction"
	LedgerServiceAddExpenseProcedure        = "/settleup.v1.LedgerService/AddExpense"
	LedgerServiceListTransactionsProcedure  = "/settleup.v1.LedgerService/ListTransactions"
	LedgerServiceGetBalancesProcedure       = "/settleup.v1.LedgerService/GetBalances"
	LedgerServiceComputeSettlementProcedure = "/settleup.v1.LedgerService/ComputeSettlement"
	LedgerServiceResetLedgerProcedure       = "/settleup.v1.LedgerService/ResetLedger"
)

// LedgerServiceClient is a client for the settleup.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateLedger(context.Context, *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	ListLedgers(context.Context, *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error)
	DeleteLedger(context.Context, *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
	ResetLedger(context.Context, *connect.Request[api.ResetLedgerRequest]) (*connect.Response[api.ResetLedgerResponse], error)
}

// NewLedgerServiceClient constructs a client for the settleup.v1.LedgerService
// service. The baseURL is the scheme and host of the server, such as
// http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &ledgerServiceClient{
		createLedger:      connect.NewClient[api.CreateLedgerRequest, api.CreateLedgerResponse](httpClient, baseURL+LedgerServiceCreateLedgerProcedure, opts...),
		getLedger:         connect.NewClient[api.GetLedgerRequest, api.GetLedgerResponse](httpClient, baseURL+LedgerServiceGetLedgerProcedure, opts...),
		listLedgers:       connect.NewClient[api.ListLedgersRequest, api.ListLedgersResponse](httpClient, baseURL+LedgerServiceListLedgersProcedure, opts...),
		deleteLedger:      connect.NewClient[api.DeleteLedgerRequest, api.DeleteLedgerResponse](httpClient, baseURL+LedgerServiceDeleteLedgerProcedure, opts...),
		addTransaction:    connect.NewClient[api.AddTransactionRequest, api.AddTransactionResponse](httpClient, baseURL+LedgerServiceAddTransactionProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		listTransactions:  connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL+LedgerServiceListTransactionsProcedure, opts...),
		getBalances:       connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		computeSettlement: connect.NewClient[api.ComputeSettlementRequest, api.ComputeSettlementResponse](httpClient, baseURL+LedgerServiceComputeSettlementProcedure, opts...),
		resetLedger:       connect.NewClient[api.ResetLedgerRequest, api.ResetLedgerResponse](httpClient, baseURL+LedgerServiceResetLedgerProcedure, opts...),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	createLedger      *connect.Client[api.CreateLedgerRequest, api.CreateLedgerResponse]
	getLedger         *connect.Client[api.GetLedgerRequest, api.GetLedgerResponse]
	listLedgers       *connect.Client[api.ListLedgersRequest, api.ListLedgersResponse]
	deleteLedger      *connect.Client[api.DeleteLedgerRequest, api.DeleteLedgerResponse]
	addTransaction    *connect.Client[api.AddTransactionRequest, api.AddTransactionResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	getBalances       *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	computeSettlement *connect.Client[api.ComputeSettlementRequest, api.ComputeSettlementResponse]
	resetLedger       *connect.Client[api.ResetLedgerRequest, api.ResetLedgerResponse]
}

func (c *ledgerServiceClient) CreateLedger(ctx context.Context, req *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error) {
	return c.createLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	return c.getLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListLedgers(ctx context.Context, req *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error) {
	return c.listLedgers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteLedger(ctx context.Context, req *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error) {
	return c.deleteLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	return c.computeSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ResetLedger(ctx context.Context, req *connect.Request[api.ResetLedgerRequest]) (*connect.Response[api.ResetLedgerResponse], error) {
	return c.resetLedger.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the settleup.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateLedger(context.Context, *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	ListLedgers(context.Context, *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error)
	DeleteLedger(context.Context, *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
	ResetLedger(context.Context, *connect.Request[api.ResetLedgerRequest]) (*connect.Response[api.ResetLedgerResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceCreateLedgerProcedure, connect.NewUnaryHandler(LedgerServiceCreateLedgerProcedure, svc.CreateLedger, opts...))
	mux.Handle(LedgerServiceGetLedgerProcedure, connect.NewUnaryHandler(LedgerServiceGetLedgerProcedure, svc.GetLedger, opts...))
	mux.Handle(LedgerServiceListLedgersProcedure, connect.NewUnaryHandler(LedgerServiceListLedgersProcedure, svc.ListLedgers, opts...))
	mux.Handle(LedgerServiceDeleteLedgerProcedure, connect.NewUnaryHandler(LedgerServiceDeleteLedgerProcedure, svc.DeleteLedger, opts...))
	mux.Handle(LedgerServiceAddTransactionProcedure, connect.NewUnaryHandler(LedgerServiceAddTransactionProcedure, svc.AddTransaction, opts...))
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceListTransactionsProcedure, connect.NewUnaryHandler(LedgerServiceListTransactionsProcedure, svc.ListTransactions, opts...))
	mux.Handle(LedgerServiceGetBalancesProcedure, connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(LedgerServiceComputeSettlementProcedure, connect.NewUnaryHandler(LedgerServiceComputeSettlementProcedure, svc.ComputeSettlement, opts...))
	mux.Handle(LedgerServiceResetLedgerProcedure, connect.NewUnaryHandler(LedgerServiceResetLedgerProcedure, svc.ResetLedger, opts...))
	return "/" + LedgerServiceName + "/", mux
}
