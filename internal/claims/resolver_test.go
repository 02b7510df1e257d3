package claims

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sotcredit/internal/claims/mocks"
	"sotcredit/pkg/domain"
	dErrors "sotcredit/pkg/domain-errors"
	"sotcredit/pkg/platform/sentinel"
	"sotcredit/pkg/requestcontext"
)

// =============================================================================
// Resolver Test Suite
// =============================================================================
// Resolution order and the optional/required split for CRM lookups are the
// behaviors under test here; the CRM itself is mocked.

type ResolverSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	crm      *mocks.MockCRMPort
	resolver *Resolver
	ctx      context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.crm = mocks.NewMockCRMPort(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var err error
	s.resolver, err = NewResolver(s.crm, WithLogger(logger))
	s.Require().NoError(err)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC))
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) expectValid(accountID, opco string) {
	s.crm.EXPECT().AccountExists(gomock.Any(), accountID).Return(true, nil)
	s.crm.EXPECT().OpcoExists(gomock.Any(), opco).Return(true, nil)
}

func rawClaim(identifier string, lines ...RawClaimLine) RawClaim {
	if len(lines) == 0 {
		lines = []RawClaimLine{{InvoiceNumber: "INV1", ItemCode: "1001", MissingQuantity: domain.IntScalar(3)}}
	}
	return RawClaim{
		AccountIdentifier: identifier,
		CustomerName:      "Corner Bistro",
		CaseCreatedAt:     "2024-03-05T10:15:00.000+0000",
		Lines:             lines,
	}
}

func (s *ResolverSuite) TestNewResolver() {
	s.Run("nil crm returns error", func() {
		_, err := NewResolver(nil)
		s.Error(err)
		s.Contains(err.Error(), "crm port is required")
	})
}

func (s *ResolverSuite) TestIdentifierShapes() {
	s.Run("hyphenated identifier", func() {
		s.expectValid("ABC-123456", "ABC")

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456"))
		s.Require().NoError(err)
		s.Equal(domain.AccountID("ABC-123456"), cc.AccountID)
		s.Equal("ABC", cc.OpcoCode)
		s.Equal("123456", cc.CustomerNumber)
		s.Equal("Corner Bistro", cc.CustomerName)
	})

	s.Run("concatenated identifier", func() {
		s.expectValid("ABC-12345", "ABC")

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("ABC12345"))
		s.Require().NoError(err)
		s.Equal(domain.AccountID("ABC-12345"), cc.AccountID)
	})

	s.Run("bare number combines with explicit opco", func() {
		s.expectValid("XYZ-123456", "XYZ")

		raw := rawClaim("123456")
		raw.OpcoCode = "XYZ"
		cc, err := s.resolver.Resolve(s.ctx, raw)
		s.Require().NoError(err)
		s.Equal(domain.AccountID("XYZ-123456"), cc.AccountID)
	})
}

func (s *ResolverSuite) TestFallbacks() {
	s.Run("account by first non-placeholder invoice", func() {
		s.crm.EXPECT().AccountByInvoice(gomock.Any(), "INV2").Return("DEF-654321", nil)
		s.expectValid("DEF-654321", "DEF")

		raw := rawClaim(domain.Placeholder,
			RawClaimLine{InvoiceNumber: domain.Placeholder, ItemCode: "1001"},
			RawClaimLine{InvoiceNumber: "INV2", ItemCode: "1002"},
		)
		cc, err := s.resolver.Resolve(s.ctx, raw)
		s.Require().NoError(err)
		s.Equal(domain.AccountID("DEF-654321"), cc.AccountID)
		s.Equal("", cc.Lines[0].InvoiceNumber)
	})

	s.Run("opco by account number when unique", func() {
		s.crm.EXPECT().OpcosByAccountNumber(gomock.Any(), "123456").Return([]string{"GHI"}, nil)
		s.expectValid("GHI-123456", "GHI")

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("123456"))
		s.Require().NoError(err)
		s.Equal(domain.AccountID("GHI-123456"), cc.AccountID)
	})

	s.Run("multiple opcos is an ambiguity, not a guess", func() {
		s.crm.EXPECT().OpcosByAccountNumber(gomock.Any(), "123456").Return([]string{"GHI", "JKL"}, nil)

		_, err := s.resolver.Resolve(s.ctx, rawClaim("123456"))
		s.Require().Error(err)
		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal(dErrors.CodeResolution, de.Code)
		s.Equal("GHI,JKL", de.Details["candidate_opcos"])
	})

	s.Run("account by invoice yielding a bare number falls through to opco lookup", func() {
		s.crm.EXPECT().AccountByInvoice(gomock.Any(), "INV1").Return("123456", nil)
		s.crm.EXPECT().OpcosByAccountNumber(gomock.Any(), "123456").Return([]string{"GHI"}, nil)
		s.expectValid("GHI-123456", "GHI")

		cc, err := s.resolver.Resolve(s.ctx, rawClaim(""))
		s.Require().NoError(err)
		s.Equal(domain.AccountID("GHI-123456"), cc.AccountID)
	})

	s.Run("unavailable optional lookups degrade to unresolved", func() {
		s.crm.EXPECT().AccountByInvoice(gomock.Any(), "INV1").Return("", sentinel.ErrUnavailable)

		_, err := s.resolver.Resolve(s.ctx, rawClaim(""))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeResolution))
	})

	s.Run("no identifier and no invoice", func() {
		_, err := s.resolver.Resolve(s.ctx, rawClaim("", RawClaimLine{ItemCode: "1001"}))
		s.True(dErrors.HasCode(err, dErrors.CodeResolution))
	})
}

func (s *ResolverSuite) TestValidation() {
	s.Run("unknown account is a resolution error", func() {
		s.crm.EXPECT().AccountExists(gomock.Any(), "ABC-123456").Return(false, nil)
		s.crm.EXPECT().OpcoExists(gomock.Any(), "ABC").Return(true, nil)

		_, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeResolution))
		s.Contains(err.Error(), "given accountId/opco is invalid")
	})

	s.Run("unknown opco is a resolution error", func() {
		s.crm.EXPECT().AccountExists(gomock.Any(), "ABC-123456").Return(true, nil)
		s.crm.EXPECT().OpcoExists(gomock.Any(), "ABC").Return(false, sentinel.ErrNotFound)

		_, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456"))
		s.True(dErrors.HasCode(err, dErrors.CodeResolution))
	})

	s.Run("unreachable crm during validation is a hard failure", func() {
		s.crm.EXPECT().AccountExists(gomock.Any(), "ABC-123456").Return(false, sentinel.ErrUnavailable)

		_, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456"))
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})
}

func (s *ResolverSuite) TestCustomerName() {
	s.Run("backfilled when missing", func() {
		s.expectValid("ABC-123456", "ABC")
		s.crm.EXPECT().CustomerName(gomock.Any(), "ABC-123456").Return("Harbor Grill", nil)

		raw := rawClaim("ABC-123456")
		raw.CustomerName = domain.Placeholder
		cc, err := s.resolver.Resolve(s.ctx, raw)
		s.Require().NoError(err)
		s.Equal("Harbor Grill", cc.CustomerName)
	})

	s.Run("lookup failure leaves name empty", func() {
		s.expectValid("ABC-123456", "ABC")
		s.crm.EXPECT().CustomerName(gomock.Any(), "ABC-123456").Return("", sentinel.ErrUnavailable)

		raw := rawClaim("ABC-123456")
		raw.CustomerName = ""
		cc, err := s.resolver.Resolve(s.ctx, raw)
		s.Require().NoError(err)
		s.Empty(cc.CustomerName)
	})
}

func (s *ResolverSuite) TestItemCodeBackfill() {
	s.Run("single candidate is assigned", func() {
		s.expectValid("ABC-123456", "ABC")
		s.crm.EXPECT().InvoiceItemCodes(gomock.Any(), "INV1").Return([]string{"1001", " 1001 "}, nil)

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456", RawClaimLine{InvoiceNumber: "INV1", ItemCode: domain.Placeholder}))
		s.Require().NoError(err)
		s.Equal("1001", cc.Lines[0].ItemCode)
		s.False(cc.Lines[0].Unresolved)
		s.Equal([]string{"1001"}, cc.Lines[0].CandidateItemCodes)
	})

	s.Run("several candidates leave the line unresolved", func() {
		s.expectValid("ABC-123456", "ABC")
		s.crm.EXPECT().InvoiceItemCodes(gomock.Any(), "INV1").Return([]string{"1001", "1002", "1001"}, nil).Times(1)

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456",
			RawClaimLine{InvoiceNumber: "INV1"},
			RawClaimLine{InvoiceNumber: "INV1", ItemCode: ""},
		))
		s.Require().NoError(err)
		for _, line := range cc.Lines {
			s.True(line.Unresolved)
			s.Equal([]string{"1001", "1002"}, line.CandidateItemCodes)
		}
	})

	s.Run("lookup failure leaves the line unresolved without candidates", func() {
		s.expectValid("ABC-123456", "ABC")
		s.crm.EXPECT().InvoiceItemCodes(gomock.Any(), "INV1").Return(nil, sentinel.ErrUnavailable)

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456", RawClaimLine{InvoiceNumber: "INV1"}))
		s.Require().NoError(err)
		s.True(cc.Lines[0].Unresolved)
		s.Empty(cc.Lines[0].CandidateItemCodes)
	})

	s.Run("duplicate lines are kept", func() {
		s.expectValid("ABC-123456", "ABC")
		line := RawClaimLine{InvoiceNumber: "INV1", ItemCode: "1001", MissingQuantity: domain.IntScalar(2)}

		cc, err := s.resolver.Resolve(s.ctx, rawClaim("ABC-123456", line, line))
		s.Require().NoError(err)
		s.Len(cc.Lines, 2)
	})
}

func (s *ResolverSuite) TestCaseCreatedAt() {
	s.Run("absent uses request time", func() {
		s.expectValid("ABC-123456", "ABC")

		raw := rawClaim("ABC-123456")
		raw.CaseCreatedAt = ""
		cc, err := s.resolver.Resolve(s.ctx, raw)
		s.Require().NoError(err)
		s.Equal(time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC), cc.CaseCreatedAt)
	})

	s.Run("malformed is a validation error", func() {
		raw := rawClaim("ABC-123456")
		raw.CaseCreatedAt = "yesterday"
		_, err := s.resolver.Resolve(s.ctx, raw)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestParseCaseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05T10:15:00.000+0000", time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)},
		{"2024-03-05T10:15:00.000-0500", time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)},
		{"2024-03-05T10:15:00+0200", time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)},
		{"2024-03-05T10:15:00Z", time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)},
		{"2024-03-05T10:15:00+02:00", time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCaseTimestamp(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
