package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/calculator"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&calculator.ValidationError{Index: 0, Field: "amount", Reason: "must be positive"}, OutcomeInvalid},
		{fmt.Errorf("wrapped: %w", &calculator.InvariantViolation{}), OutcomeInvariantViolation},
		{calculator.ErrTooManyParticipants, OutcomeTooLarge},
		{errors.New("disk on fire"), OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestObserveSettlement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSettlement(3, time.Millisecond, nil)
	m.ObserveSettlement(0, time.Millisecond, calculator.ErrTooManyParticipants)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Settlements.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Settlements.WithLabelValues(OutcomeTooLarge)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PlanTransfers))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "settleup_settlements_total"))
}
