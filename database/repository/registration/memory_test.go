package registrationRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gebedsrooster/models"
)

type MemoryRepoSuite struct {
	suite.Suite
	repo *MemoryRegistrationRepo
	ctx  context.Context
	base time.Time
}

func (s *MemoryRepoSuite) SetupTest() {
	s.repo = NewMemoryRegistrationRepo()
	s.ctx = context.Background()
	s.base = time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestMemoryRepoSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepoSuite))
}

func (s *MemoryRepoSuite) reg(name string, createdOffset time.Duration) models.Registration {
	return models.Registration{
		Name:      name,
		Email:     "a@b.nl",
		Date:      s.base,
		CreatedAt: s.base.Add(createdOffset),
	}
}

func (s *MemoryRepoSuite) TestListOrdersByCreation() {
	_, err := s.repo.Add(s.ctx, s.reg("late", 2*time.Millisecond))
	s.Require().NoError(err)
	_, err = s.repo.BatchAdd(s.ctx, []models.Registration{s.reg("early", 0), s.reg("middle", time.Millisecond)})
	s.Require().NoError(err)

	regs, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 3)
	s.Equal("early", regs[0].Name)
	s.Equal("middle", regs[1].Name)
	s.Equal("late", regs[2].Name)
	for _, r := range regs {
		s.NotEmpty(r.ID)
	}
}

func (s *MemoryRepoSuite) TestBatchFailureWritesNothing() {
	s.repo.FailNextBatch = errors.New("boom")
	_, err := s.repo.BatchAdd(s.ctx, []models.Registration{s.reg("a", 0), s.reg("b", 1)})
	s.Require().Error(err)

	regs, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(regs)

	_, err = s.repo.Add(s.ctx, s.reg("c", 0))
	s.NoError(err)
}

func (s *MemoryRepoSuite) TestDeleteAndMarkReminded() {
	r := s.reg("piet", 0)
	r.NeedsReminder = true
	added, err := s.repo.Add(s.ctx, r)
	s.Require().NoError(err)

	s.Run("mark reminded clears the flag", func() {
		s.Require().NoError(s.repo.MarkReminded(s.ctx, added.ID))
		got, err := s.repo.GetByID(s.ctx, added.ID)
		s.Require().NoError(err)
		s.False(got.NeedsReminder)
	})

	s.Run("delete removes the document", func() {
		s.Require().NoError(s.repo.Delete(s.ctx, added.ID))
		_, err := s.repo.GetByID(s.ctx, added.ID)
		s.ErrorIs(err, ErrNotFound)
	})

	s.Run("unknown ids report not found", func() {
		s.ErrorIs(s.repo.Delete(s.ctx, "nope"), ErrNotFound)
		s.ErrorIs(s.repo.MarkReminded(s.ctx, "nope"), ErrNotFound)
	})
}

func (s *MemoryRepoSuite) TestWatchPushesSnapshots() {
	ctx, cancel := context.WithCancel(s.ctx)
	ch, err := s.repo.Watch(ctx)
	s.Require().NoError(err)

	first := <-ch
	s.Empty(first)

	_, err = s.repo.Add(s.ctx, s.reg("jan", 0))
	s.Require().NoError(err)

	select {
	case snap := <-ch:
		s.Require().Len(snap, 1)
		s.Equal("jan", snap[0].Name)
	case <-time.After(time.Second):
		s.Fail("no snapshot after write")
	}

	cancel()
	s.Eventually(func() bool {
		_, open := <-ch
		return !open
	}, time.Second, 10*time.Millisecond)
}

func (s *MemoryRepoSuite) TestSlowWatcherSeesLatest() {
	ch, err := s.repo.Watch(s.ctx)
	s.Require().NoError(err)

	for i := range 5 {
		_, err := s.repo.Add(s.ctx, s.reg("n", time.Duration(i)))
		s.Require().NoError(err)
	}
	snap := <-ch
	s.Len(snap, 5)
}
