package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/repository"
	"tripinvite/portal/internal/testutil"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeSender) Send(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, to)
	if err := f.fail[to]; err != nil {
		return err
	}
	return nil
}

type failingEventRepo struct{}

func (failingEventRepo) Append(context.Context, *model.InviteEvent) error {
	return errors.New("insert failed")
}

type repos struct {
	db      *gorm.DB
	invites repository.InviteRepository
	events  repository.InviteEventRepository
	trips   repository.TripEventRepository
	survey  repository.SurveyRepository
}

func newRepos(t *testing.T) repos {
	db := testutil.NewDB(t)
	return repos{
		db:      db,
		invites: repository.NewGormInviteRepository(db),
		events:  repository.NewGormInviteEventRepository(db),
		trips:   repository.NewGormTripEventRepository(db),
		survey:  repository.NewGormSurveyRepository(db),
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var nop = zap.NewNop()
