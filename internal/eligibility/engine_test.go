package eligibility

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sotcredit/internal/claims"
	"sotcredit/internal/eligibility/mocks"
	"sotcredit/internal/records"
	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/requestcontext"
)

// =============================================================================
// Engine Test Suite
// =============================================================================
// The rule chain, memo reconciliation and fail-fast ordering are exercised
// against mocked record fetchers.

var (
	deliveredOn = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	requestTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
)

type EngineSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	records *mocks.MockRecordsPort
	engine  *Engine
	ctx     context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.records = mocks.NewMockRecordsPort(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.engine, err = NewEngine(s.records, DefaultConfig(), WithEngineLogger(logger))
	s.Require().NoError(err)
	s.ctx = requestcontext.WithTime(context.Background(), requestTime)
}

func (s *EngineSuite) TearDownTest() {
	s.ctrl.Finish()
}

func caseContext(createdAt time.Time, lines ...claims.ClaimLine) claims.CaseContext {
	return claims.NewCaseContext("ABC-123456", "Corner Bistro", createdAt, lines)
}

func claimLine(invoice, item string, qty int) claims.ClaimLine {
	return claims.ClaimLine{InvoiceNumber: invoice, ItemCode: item, MissingQuantity: domain.IntScalar(qty)}
}

func delivery(item string, ordered, delivered, rejected int) *records.DeliveryRecord {
	return &records.DeliveryRecord{
		ItemCode:              item,
		OrderedQuantity:       ordered,
		DeliveredQuantity:     delivered,
		RejectedQuantity:      rejected,
		ScheduledDeliveryDate: deliveredOn,
	}
}

func (s *EngineSuite) expectFound(invoice, item string, rec *records.DeliveryRecord) {
	s.records.EXPECT().FetchInvoiceLine(gomock.Any(), invoice, "ABC", item).
		Return(&records.InvoiceLineSnapshot{ItemCode: item, SplitCode: domain.SplitCodeCase}, nil)
	s.records.EXPECT().FetchDeliveryRecord(gomock.Any(), invoice, "ABC", item).Return(rec, nil)
}

func (s *EngineSuite) expectMemos(memos ...records.CreditMemoLine) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	s.records.EXPECT().FetchCreditMemos(gomock.Any(), "123456", "ABC", deliveredOn, today).Return(memos, nil)
}

func (s *EngineSuite) evaluateOne(createdAt time.Time, line claims.ClaimLine) Verdict {
	verdicts, err := s.engine.Evaluate(s.ctx, caseContext(createdAt, line))
	s.Require().NoError(err)
	s.Require().Len(verdicts, 1)
	return verdicts[0]
}

func (s *EngineSuite) TestNewEngine() {
	s.Run("nil records port returns error", func() {
		_, err := NewEngine(nil, DefaultConfig())
		s.Error(err)
	})

	s.Run("non-positive claim age returns error", func() {
		cfg := DefaultConfig()
		cfg.MaxClaimAgeDays = 0
		_, err := NewEngine(s.records, cfg)
		s.Error(err)
	})
}

func (s *EngineSuite) TestSoftOutcomes() {
	s.Run("invoice not found skips delivery lookup", func() {
		s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV1", "ABC", "1001").Return(nil, nil)

		v := s.evaluateOne(deliveredOn.Add(48*time.Hour), claimLine("INV1", "1001", 3))
		s.False(v.Eligible)
		s.Equal(StatusInvoiceNotFound, v.Status)
		s.Empty(v.SplitCode)
		s.Empty(v.DeliveryDate)
	})

	s.Run("scanned data not found keeps split code", func() {
		s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV1", "ABC", "1001").
			Return(&records.InvoiceLineSnapshot{ItemCode: "1001", SplitCode: domain.SplitCodeSplit}, nil)
		s.records.EXPECT().FetchDeliveryRecord(gomock.Any(), "INV1", "ABC", "1001").Return(nil, nil)

		v := s.evaluateOne(deliveredOn.Add(48*time.Hour), claimLine("INV1", "1001", 3))
		s.False(v.Eligible)
		s.Equal(StatusScannedNotFound, v.Status)
		s.Equal(domain.SplitCodeSplit, v.SplitCode)
	})

	s.Run("unresolved item code makes no lookups", func() {
		line := claims.ClaimLine{InvoiceNumber: "INV1", Unresolved: true, CandidateItemCodes: []string{"1001", "1002"}}

		v := s.evaluateOne(deliveredOn.Add(48*time.Hour), line)
		s.False(v.Eligible)
		s.Equal(StatusItemCodeUnresolved, v.Status)
		s.Equal([]string{"1001", "1002"}, v.CandidateItemCodes)
	})

	s.Run("blank invoice number is not found without a lookup", func() {
		v := s.evaluateOne(deliveredOn.Add(48*time.Hour), claimLine("", "1001", 3))
		s.Equal(StatusInvoiceNotFound, v.Status)
	})
}

func (s *EngineSuite) TestTimingHolds() {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    StatusReason
	}{
		{"created before delivery", -30 * time.Hour, StatusHoldTooEarly},
		{"created at delivery", 0, StatusHoldTooEarly},
		{"just inside 24 hours", 24*time.Hour - time.Minute, StatusHoldTooEarly},
		{"just past 14 days", 14*24*time.Hour + time.Minute, StatusHoldTooLate},
		{"well past 14 days", 30 * 24 * time.Hour, StatusHoldTooLate},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			// Shortage present so only timing decides.
			s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))

			v := s.evaluateOne(deliveredOn.Add(tc.elapsed), claimLine("INV1", "1001", 3))
			s.False(v.Eligible)
			s.Equal(tc.want, v.Status)
			s.Equal(10, v.OrderedQuantity)
			s.Equal("2024-03-05", v.DeliveryDate)
		})
	}

	s.Run("exactly 24 hours and exactly 14 days are in window", func() {
		for _, elapsed := range []time.Duration{24 * time.Hour, 14 * 24 * time.Hour} {
			s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))
			s.expectMemos()

			v := s.evaluateOne(deliveredOn.Add(elapsed), claimLine("INV1", "1001", 3))
			s.Equal(StatusNoPriorCredits, v.Status)
		}
	})
}

func (s *EngineSuite) TestShortageAndReconciliation() {
	createdAt := deliveredOn.Add(3 * 24 * time.Hour)

	s.Run("fully loaded never reconciles", func() {
		s.expectFound("INV1", "1001", delivery("1001", 10, 7, 3))

		v := s.evaluateOne(createdAt, claimLine("INV1", "1001", 3))
		s.False(v.Eligible)
		s.Equal(StatusFullyLoaded, v.Status)
	})

	s.Run("no matching memos", func() {
		s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))
		s.expectMemos(
			records.CreditMemoLine{ReferencedInvoiceNumber: "INV1", ItemCode: "1001", TransactionCode: "D", OriginalShipQuantity: 3},
			records.CreditMemoLine{ReferencedInvoiceNumber: "INV9", ItemCode: "1001", TransactionCode: "C", OriginalShipQuantity: 3},
		)

		v := s.evaluateOne(createdAt, claimLine("INV1", "1001", 3))
		s.True(v.Eligible)
		s.Equal(StatusNoPriorCredits, v.Status)
		s.Equal(0, v.PreviousCreditShipQuantity)
		s.Equal(3, v.EligibleQuantity())
	})

	s.Run("prior credit smaller than shortage", func() {
		s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))
		s.expectMemos(records.CreditMemoLine{ReferencedInvoiceNumber: "INV1", ItemCode: "1001", TransactionCode: "C", OriginalShipQuantity: 3})

		v := s.evaluateOne(createdAt, claimLine("INV1", "1001", 3))
		s.True(v.Eligible)
		s.Equal(StatusEligible, v.Status)
		s.Equal(-3, v.PreviousCreditShipQuantity)
		s.Equal(6, v.EligibleQuantity())
	})

	s.Run("prior credits are summed", func() {
		s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))
		s.expectMemos(
			records.CreditMemoLine{ReferencedInvoiceNumber: "INV1", ItemCode: "1001", TransactionCode: "C", OriginalShipQuantity: 1},
			records.CreditMemoLine{ReferencedInvoiceNumber: "INV1", ItemCode: "1001", TransactionCode: "C", OriginalShipQuantity: 2},
		)

		v := s.evaluateOne(createdAt, claimLine("INV1", "1001", 3))
		s.Equal(-3, v.PreviousCreditShipQuantity)
	})

	s.Run("scanned delta equal to prior credit", func() {
		s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))
		s.expectMemos(records.CreditMemoLine{ReferencedInvoiceNumber: "INV1", ItemCode: "1001", TransactionCode: "C", OriginalShipQuantity: -3})

		v := s.evaluateOne(createdAt, claimLine("INV1", "1001", 3))
		s.False(v.Eligible)
		s.Equal(StatusExactPriorCredit, v.Status)
	})

	s.Run("scanned delta greater than prior credit", func() {
		s.expectFound("INV1", "1001", delivery("1001", 10, 4, 3))
		s.expectMemos(records.CreditMemoLine{ReferencedInvoiceNumber: "INV1", ItemCode: "1001", TransactionCode: "C", OriginalShipQuantity: -5})

		v := s.evaluateOne(createdAt, claimLine("INV1", "1001", 3))
		s.True(v.Eligible)
		s.Equal(StatusPartialPriorCredit, v.Status)
	})
}

func (s *EngineSuite) TestHardFailures() {
	createdAt := deliveredOn.Add(3 * 24 * time.Hour)

	s.Run("integrity error aborts the case and names the line", func() {
		s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV1", "ABC", "1001").
			Return(&records.InvoiceLineSnapshot{ItemCode: "1001", SplitCode: domain.SplitCodeCase}, nil)
		s.records.EXPECT().FetchDeliveryRecord(gomock.Any(), "INV1", "ABC", "1001").
			Return(nil, dErrors.New(dErrors.CodeDataIntegrity, "quantity is missing"))

		_, err := s.engine.Evaluate(s.ctx, caseContext(createdAt, claimLine("INV1", "1001", 3)))
		s.Require().Error(err)
		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal(dErrors.CodeDataIntegrity, de.Code)
		s.Equal("0", de.Details["line"])
	})

	s.Run("cancelled context fails every line", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()

		_, err := s.engine.Evaluate(ctx, caseContext(createdAt, claimLine("INV1", "1001", 3)))
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

// TestFailFastReportsFirstFailureByIndex runs lines one at a time so the
// skip behavior is deterministic.
func (s *EngineSuite) TestFailFastReportsFirstFailureByIndex() {
	cfg := DefaultConfig()
	cfg.Workers = 1
	engine, err := NewEngine(s.records, cfg)
	s.Require().NoError(err)

	s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV0", "ABC", "1001").Return(nil, nil)
	s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV1", "ABC", "1001").
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "invoice service unavailable"))
	// INV2 must not be fetched: it starts after line 1 failed.

	cc := caseContext(deliveredOn.Add(48*time.Hour),
		claimLine("INV0", "1001", 1),
		claimLine("INV1", "1001", 1),
		claimLine("INV2", "1001", 1),
	)
	_, err = engine.Evaluate(s.ctx, cc)
	s.Require().Error(err)
	de, _ := dErrors.As(err)
	s.Equal("1", de.Details["line"])
}

func (s *EngineSuite) TestEvaluateLinesIsolatesFailures() {
	s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV0", "ABC", "1001").
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "invoice service unavailable"))
	s.records.EXPECT().FetchInvoiceLine(gomock.Any(), "INV1", "ABC", "1001").Return(nil, nil)

	results := s.engine.EvaluateLines(s.ctx, caseContext(deliveredOn.Add(48*time.Hour),
		claimLine("INV0", "1001", 1),
		claimLine("INV1", "1001", 1),
	))
	s.Require().Len(results, 2)
	s.Equal(OutcomeFailed, results[0].Kind)
	s.True(dErrors.HasCode(results[0].Err, dErrors.CodeUnavailable))
	s.Equal(OutcomeSoft, results[1].Kind)
	s.Equal(StatusInvoiceNotFound, results[1].Verdict.Status)
}

func (s *EngineSuite) TestOrderPreservedUnderConcurrency() {
	const n = 20
	var inFlight, peak atomic.Int32
	lines := make([]claims.ClaimLine, n)
	for i := range lines {
		invoice := "INV" + strconv.Itoa(i)
		lines[i] = claimLine(invoice, "1001", 1)
	}
	s.records.EXPECT().FetchInvoiceLine(gomock.Any(), gomock.Any(), "ABC", "1001").
		DoAndReturn(func(context.Context, string, string, string) (*records.InvoiceLineSnapshot, error) {
			cur := inFlight.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
			return nil, nil
		}).Times(n)

	verdicts, err := s.engine.Evaluate(s.ctx, caseContext(deliveredOn.Add(48*time.Hour), lines...))
	s.Require().NoError(err)
	s.Require().Len(verdicts, n)
	for i, v := range verdicts {
		s.Equal("INV"+strconv.Itoa(i), v.InvoiceNumber)
	}
	s.LessOrEqual(peak.Load(), int32(DefaultConfig().Workers))
}
