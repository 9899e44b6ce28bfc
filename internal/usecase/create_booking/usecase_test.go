package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SE-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SE-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/notification"
	"github.com/m04kA/SE-RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/SE-RoomBookingService/internal/service/slots"
	"github.com/m04kA/SE-RoomBookingService/pkg/logger"
	"github.com/m04kA/SE-RoomBookingService/pkg/txmanager"
)

var now = time.Date(2026, 10, 19, 9, 45, 0, 0, time.UTC)

type fakeRepo struct {
	booked    []string
	bookedErr error
	count     int
	countErr  error
	createErr error
	calls     int
	created   []*domain.Booking
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.calls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.ID = int64(len(r.created) + 1)
	b.CreatedAt = now
	r.created = append(r.created, b)
	return b, nil
}

func (r *fakeRepo) GetBookedSlots(_ context.Context, _ string, _ time.Time) ([]string, error) {
	r.calls++
	return r.booked, r.bookedErr
}

func (r *fakeRepo) CountByUserAndRoom(_ context.Context, _ int64, _ string) (int, error) {
	r.calls++
	return r.count, r.countErr
}

type fakeUserClient struct {
	student *userservice.Student
	err     error
	calls   int
}

func (c *fakeUserClient) GetStudentWithGracefulDegradation(_ context.Context, _ int64) (*userservice.Student, error) {
	c.calls++
	return c.student, c.err
}

type fakeCache struct {
	invalidated []string
	err         error
}

func (c *fakeCache) Invalidate(_ context.Context, roomKey, date string) error {
	c.invalidated = append(c.invalidated, roomKey+":"+date)
	return c.err
}

type fakeNotifier struct {
	events []notification.Event
	err    error
}

func (n *fakeNotifier) Notify(event notification.Event) error {
	n.events = append(n.events, event)
	return n.err
}

// fakeTxManager commitErr имитирует отказ СУБД при фиксации
type fakeTxManager struct {
	commitErr error
}

func (m fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.commitErr
}

type fixture struct {
	uc       *UseCase
	repo     *fakeRepo
	users    *fakeUserClient
	cache    *fakeCache
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := domain.NewRoomCatalog(domain.DefaultRooms())
	require.NoError(t, err)

	f := &fixture{
		repo: &fakeRepo{},
		users: &fakeUserClient{student: &userservice.Student{
			UserID: 1, StudentID: "S-100", Name: "Ada", Email: "ada@uni.edu",
		}},
		cache:    &fakeCache{},
		notifier: &fakeNotifier{},
	}
	svc := slots.NewService(catalog, slots.DefaultConfig(), &slots.FixedTimeProvider{T: now})
	f.uc = NewUseCase(f.repo, svc, f.users, f.cache, f.notifier, fakeTxManager{},
		Config{MaxBookingsPerRoom: 2}, logger.Nop(), nil)
	return f
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: 1, RoomKey: "meeting", Date: "2026-10-19", TimeSlot: "10-11am",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Meeting Room", resp.RoomName)
	assert.Equal(t, "10-11am", resp.TimeSlot)
	assert.Equal(t, "S-100", resp.StudentID)
	assert.Equal(t, "2026-10-19", resp.BookingDate.Format(domain.DateFormat))

	assert.Equal(t, []string{"meeting:2026-10-19"}, f.cache.invalidated)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notification.KindNewBooking, f.notifier.events[0].Kind)
	assert.Equal(t, int64(1), f.notifier.events[0].Booking.ID)
}

func TestExecute_Locker(t *testing.T) {
	f := newFixture(t)
	f.repo.booked = []string{"Locker 1"}

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: 1, RoomKey: "locker", Date: "2026-10-19", TimeSlot: "Locker 2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Locker 2", resp.TimeSlot)
}

func TestExecute_IncompleteSelectionMakesNoCalls(t *testing.T) {
	for _, req := range []Request{
		{UserID: 1, RoomKey: "meeting", Date: "2026-10-19"},
		{UserID: 1, RoomKey: "meeting", TimeSlot: "10-11am"},
		{UserID: 1, Date: "2026-10-19", TimeSlot: "10-11am"},
		{RoomKey: "meeting", Date: "2026-10-19", TimeSlot: "10-11am"},
	} {
		f := newFixture(t)
		_, err := f.uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, f.repo.calls)
		assert.Zero(t, f.users.calls)
		assert.Empty(t, f.notifier.events)
	}
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "unknown room",
			req:     Request{UserID: 1, RoomKey: "gym", Date: "2026-10-19", TimeSlot: "10-11am"},
			wantErr: ErrRoomNotFound,
		},
		{
			name:    "malformed date",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026/10/19", TimeSlot: "10-11am"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "date after window",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-27", TimeSlot: "10-11am"},
			wantErr: ErrDateOutOfWindow,
		},
		{
			name:    "past date",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-18", TimeSlot: "10-11am"},
			wantErr: ErrDateOutOfWindow,
		},
		{
			name:    "non canonical slot",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "10:00"},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "locker label for timed room",
			req:     Request{UserID: 1, RoomKey: "kitchen", Date: "2026-10-20", TimeSlot: "Locker 1"},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "unknown locker",
			req:     Request{UserID: 1, RoomKey: "locker", Date: "2026-10-20", TimeSlot: "Locker 9"},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "slot before first hour on future date",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "7-8am"},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:    "slot in progress",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-19", TimeSlot: "9-10am"},
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "slot after last start hour",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "11-12am"},
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "student not found",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "10-11am"},
			setup:   func(f *fixture) { f.users.err = userservice.ErrStudentNotFound },
			wantErr: ErrStudentNotFound,
		},
		{
			name:    "slot already booked",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "10-11am"},
			setup:   func(f *fixture) { f.repo.booked = []string{"10-11am"} },
			wantErr: ErrSlotNotAvailable,
		},
		{
			name:    "slot taken concurrently",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "10-11am"},
			setup:   func(f *fixture) { f.repo.createErr = bookingRepo.ErrSlotTaken },
			wantErr: ErrSlotNotAvailable,
		},
		{
			name:    "limit reached",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "10-11am"},
			setup:   func(f *fixture) { f.repo.count = 2 },
			wantErr: ErrBookingLimitReached,
		},
		{
			name:    "storage failure",
			req:     Request{UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "10-11am"},
			setup:   func(f *fixture) { f.repo.createErr = errors.New("connection reset") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			resp, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Empty(t, f.notifier.events)
			assert.Empty(t, f.cache.invalidated)
		})
	}
}

func TestExecute_UserServiceDegraded(t *testing.T) {
	f := newFixture(t)
	f.users.student = nil
	f.users.err = userservice.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: 5, RoomKey: "kitchen", Date: "2026-10-21", TimeSlot: "6-7pm",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.UserID)
	assert.Empty(t, resp.StudentName)
}

func TestExecute_SideEffectFailuresDoNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.cache.err = errors.New("redis down")
	f.notifier.err = notification.ErrQueueFull

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID: 1, RoomKey: "meeting", Date: "2026-10-20", TimeSlot: "9-10am",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestExecute_ConcurrentBookingIsConflict(t *testing.T) {
	serializationFailure := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "aborted on insert",
			setup: func(f *fixture) {
				f.repo.createErr = fmt.Errorf("%w: concurrent transaction: %v", bookingRepo.ErrSlotTaken, serializationFailure)
			},
		},
		{
			name: "aborted on booked slots read",
			setup: func(f *fixture) {
				f.repo.bookedErr = fmt.Errorf("%w: GetBookedSlots: %v", bookingRepo.ErrSerializationFailure, serializationFailure)
			},
		},
		{
			name: "aborted on limit count",
			setup: func(f *fixture) {
				f.repo.countErr = fmt.Errorf("%w: CountByUserAndRoom: %v", bookingRepo.ErrSerializationFailure, serializationFailure)
			},
		},
		{
			name: "aborted at commit",
			setup: func(f *fixture) {
				f.uc.txManager = fakeTxManager{commitErr: fmt.Errorf("%w: %v", txmanager.ErrSerialization, serializationFailure)}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.uc.Execute(context.Background(), &Request{
				UserID: 1, RoomKey: "meeting", Date: "2026-10-19", TimeSlot: "10-11am",
			})
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.NotErrorIs(t, err, ErrInternal)
			assert.Empty(t, f.cache.invalidated)
			assert.Empty(t, f.notifier.events)
		})
	}
}

func TestExecute_CommitFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.uc.txManager = fakeTxManager{commitErr: fmt.Errorf("%w: connection reset", txmanager.ErrCommitTx)}

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID: 1, RoomKey: "meeting", Date: "2026-10-19", TimeSlot: "10-11am",
	})
	assert.ErrorIs(t, err, ErrInternal)
}
