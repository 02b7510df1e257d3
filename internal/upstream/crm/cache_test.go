package crm

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sotcredit/internal/claims/mocks"
	"sotcredit/pkg/platform/sentinel"
)

// =============================================================================
// CRM Cache Test Suite (Redis unreachable)
// =============================================================================

type CacheSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	crm   *mocks.MockCRMPort
	rdb   *redis.Client
	cache *Cached
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.crm = mocks.NewMockCRMPort(s.ctrl)
	// Nothing listens on port 1, so every Redis command fails fast.
	s.rdb = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})

	var err error
	s.cache, err = NewCached(s.crm, s.rdb, time.Minute,
		WithCacheLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(err)
}

func (s *CacheSuite) TearDownTest() {
	_ = s.rdb.Close()
	s.ctrl.Finish()
}

func (s *CacheSuite) TestConstructorValidation() {
	_, err := NewCached(nil, s.rdb, time.Minute)
	s.ErrorContains(err, "crm port is required")
	_, err = NewCached(s.crm, nil, time.Minute)
	s.ErrorContains(err, "redis client is required")
	_, err = NewCached(s.crm, s.rdb, 0)
	s.ErrorContains(err, "ttl")
}

func (s *CacheSuite) TestBypassesFailingRedis() {
	ctx := context.Background()

	s.Run("every call reaches the CRM", func() {
		s.crm.EXPECT().AccountByInvoice(gomock.Any(), "INV1").Return("ABC-123456", nil).Times(2)
		for range 2 {
			got, err := s.cache.AccountByInvoice(ctx, "INV1")
			s.Require().NoError(err)
			s.Equal("ABC-123456", got)
		}
	})

	s.Run("CRM errors pass through unchanged", func() {
		s.crm.EXPECT().OpcosByAccountNumber(gomock.Any(), "123456").Return(nil, sentinel.ErrNotFound)
		_, err := s.cache.OpcosByAccountNumber(ctx, "123456")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("boolean and list lookups", func() {
		s.crm.EXPECT().AccountExists(gomock.Any(), "ABC-123456").Return(false, nil)
		s.crm.EXPECT().InvoiceItemCodes(gomock.Any(), "INV1").Return([]string{"1001", "2002"}, nil)

		ok, err := s.cache.AccountExists(ctx, "ABC-123456")
		s.Require().NoError(err)
		s.False(ok)

		codes, err := s.cache.InvoiceItemCodes(ctx, "INV1")
		s.Require().NoError(err)
		s.Equal([]string{"1001", "2002"}, codes)
	})
}
