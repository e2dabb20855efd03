package projector

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"venue-status-backend/config"
	"venue-status-backend/internal/model"
	"venue-status-backend/internal/store"
)

func venueWith(id int64, name string, start, end float64, days []int, closedToday bool) model.Venue {
	v := model.Venue{ID: id, Name: name}
	v.Schedule.VenueID = id
	v.Schedule.StartHour = start
	v.Schedule.EndHour = end
	v.Schedule.ClosedToday = closedToday
	v.Schedule.SetDayList(days)
	return v
}

func TestProject_Partition(t *testing.T) {
	// Wednesday noon.
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

	venues := []model.Venue{
		venueWith(1, "Open Now", 9, 17, []int{3}, false),
		venueWith(2, "Closed By Window", 9, 17, []int{0}, false),
		venueWith(3, "Closed By Override", 9, 17, []int{3}, true),
		venueWith(4, "All Day", 10, 10, []int{0, 1, 2, 3, 4, 5, 6}, false),
	}

	snap := Project(venues, now)

	assert.Equal(t, []string{"Open Now", "All Day"}, snap.Open)
	assert.Equal(t, []string{"Closed By Override"}, snap.Closed)
	assert.Equal(t, now, snap.GeneratedAt)
}

func TestProject_OverrideWinsEvenInsideWindow(t *testing.T) {
	now := time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
	venues := []model.Venue{venueWith(1, "Forced", 0, 0, []int{0, 1, 2, 3, 4, 5, 6}, true)}

	snap := Project(venues, now)

	assert.Empty(t, snap.Open)
	assert.Equal(t, []string{"Forced"}, snap.Closed)
}

func TestProject_EmptySetsMarshalAsArrays(t *testing.T) {
	snap := Project(nil, time.Now())
	assert.NotNil(t, snap.Open)
	assert.NotNil(t, snap.Closed)
}

type captureNotifier struct {
	ids []int64
}

func (n *captureNotifier) Dispatch(venueID int64) {
	n.ids = append(n.ids, venueID)
}

func newTestStore(t *testing.T, name string) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrate(&model.Venue{}, &model.Schedule{}, &model.PushSubscription{}))
	return store.NewGormStore(db)
}

func TestProjectOnce_NotifiesOnClosedToOpenTransition(t *testing.T) {
	s := newTestStore(t, "projector_transitions")
	ctx := context.Background()

	// start == end with every day listed keeps the venue open regardless of
	// when this test runs; the override is what toggles it.
	v := venueWith(0, "Branford", 0, 0, []int{0, 1, 2, 3, 4, 5, 6}, true)
	v.Schedule.VenueID = 0
	require.NoError(t, s.SeedVenues(ctx, []model.Venue{v}))

	venues, err := s.ListVenues(ctx)
	require.NoError(t, err)
	id := venues[0].ID

	notifier := &captureNotifier{}
	cfg := &config.ProjectorConfig{Enabled: true, Interval: time.Minute}
	svc := NewService(cfg, s, notifier, zap.NewNop())

	// First cycle establishes the baseline: the venue is override-closed.
	svc.ProjectOnce(ctx)
	assert.Empty(t, notifier.ids)
	assert.Equal(t, []string{"Branford"}, svc.Latest().Closed)

	// Lift the override; the next cycle must report the transition.
	sched := venues[0].Schedule
	sched.ClosedToday = false
	require.NoError(t, s.ReplaceSchedule(ctx, id, sched))

	svc.ProjectOnce(ctx)
	assert.Equal(t, []int64{id}, notifier.ids)
	assert.Equal(t, []string{"Branford"}, svc.Latest().Open)

	// Still open on the following cycle: no duplicate notification.
	svc.ProjectOnce(ctx)
	assert.Equal(t, []int64{id}, notifier.ids)
}

func TestProjectOnce_NoNotificationOnFirstCycleForAlreadyOpenVenue(t *testing.T) {
	s := newTestStore(t, "projector_baseline")
	ctx := context.Background()

	v := venueWith(0, "Grace Hopper", 0, 0, []int{0, 1, 2, 3, 4, 5, 6}, false)
	require.NoError(t, s.SeedVenues(ctx, []model.Venue{v}))

	notifier := &captureNotifier{}
	cfg := &config.ProjectorConfig{Enabled: true, Interval: time.Minute}
	svc := NewService(cfg, s, notifier, zap.NewNop())

	svc.ProjectOnce(ctx)
	assert.Empty(t, notifier.ids)
	assert.Equal(t, []string{"Grace Hopper"}, svc.Latest().Open)
}
