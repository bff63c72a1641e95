package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamestore/internal/dependencies/mocks"
	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/credential"
	"github.com/mcoot/gamestore/internal/services/storefront"
	"github.com/mcoot/gamestore/internal/storage/memory"
	"github.com/mcoot/gamestore/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	storefront *storefront.Service
	service    *Service
	ctx        context.Context
	aliceID    model.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	creds := credential.New(credential.Config{Cost: bcrypt.MinCost})
	s.storefront = storefront.New(memory.New(), creds, s.clock, testutil.NopLogger())
	s.service = New(s.storefront, s.random, s.clock, DefaultConfig())
	s.ctx = context.Background()

	id, err := s.storefront.Register(s.ctx, storefront.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	s.Require().NoError(err)
	s.aliceID = id
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	s.random.QueueToken("sess_fixed")

	session, err := s.service.Login(s.ctx, "a@x.com", "pw123")
	s.Require().NoError(err)

	s.Equal("sess_fixed", session.Token)
	s.Equal(model.SessionUser{ID: s.aliceID, Name: "alice"}, session.User)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, err := s.service.Login(s.ctx, "a@x.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody@x.com", "pw123")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginTwiceCreatesDistinctSessions() {
	first, err := s.service.Login(s.ctx, "a@x.com", "pw123")
	s.Require().NoError(err)
	second, err := s.service.Login(s.ctx, "a@x.com", "pw123")
	s.Require().NoError(err)
	s.NotEqual(first.Token, second.Token)
}

// ValidateSession tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	session, _ := s.service.Login(s.ctx, "a@x.com", "pw123")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.User, validated.User)
}

func (s *ServiceSuite) TestValidateSessionFailsWithInvalidToken() {
	_, err := s.service.ValidateSession("invalid-token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWhenExpired() {
	session, _ := s.service.Login(s.ctx, "a@x.com", "pw123")

	// Advance time past expiration
	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// InvalidateSession tests

func (s *ServiceSuite) TestInvalidateSessionRemovesSession() {
	session, _ := s.service.Login(s.ctx, "a@x.com", "pw123")

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSessionNoopForUnknownToken() {
	s.NotPanics(func() {
		s.service.InvalidateSession("unknown")
	})
}

// CurrentUser tests

func (s *ServiceSuite) TestCurrentUserSucceeds() {
	session, _ := s.service.Login(s.ctx, "a@x.com", "pw123")

	user, err := s.service.CurrentUser(session.Token)
	s.Require().NoError(err)
	s.Equal("alice", user.Name)
}

func (s *ServiceSuite) TestCurrentUserFailsWithInvalidToken() {
	_, err := s.service.CurrentUser("invalid")
	s.ErrorIs(err, ErrInvalidSession)
}

// CleanExpiredSessions tests

func (s *ServiceSuite) TestCleanExpiredSessionsRemovesExpired() {
	session1, _ := s.service.Login(s.ctx, "a@x.com", "pw123")

	// Advance time so session1 expires
	s.clock.Advance(25 * time.Hour)

	session2, _ := s.service.Login(s.ctx, "a@x.com", "pw123")

	s.service.CleanExpiredSessions()

	s.service.mu.RLock()
	_, has1 := s.service.sessions[session1.Token]
	_, has2 := s.service.sessions[session2.Token]
	s.service.mu.RUnlock()

	s.False(has1)
	s.True(has2)
}

func (s *ServiceSuite) TestRunCleanupStopsOnCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		s.service.RunCleanup(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("cleanup loop did not stop")
	}
}
