//go:build unit

package worker

import (
	"context"
	"testing"
	"time"

	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/metrics"
	sharedmock "lab-seat-reservation/internal/testutil/mock/shared"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, job shared.NotificationJob) error {
	return m.Called(ctx, job).Error(0)
}

type dispatcherFixture struct {
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	notifications *sharedmock.MockNotificationRepository
	publisher     *MockPublisher
	clock         *clock.MockClock
	dispatcher    *NotificationDispatcher
}

var testOutboxConfig = config.OutboxConfig{
	PollInterval: time.Second,
	BatchSize:    10,
	MaxAttempts:  3,
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	ctrl := gomock.NewController(t)
	f := &dispatcherFixture{
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		notifications: sharedmock.NewMockNotificationRepository(ctrl),
		publisher:     new(MockPublisher),
		clock:         clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)),
	}
	f.dispatcher = NewNotificationDispatcher(f.uow, f.publisher, f.clock, metrics.NewNop(), testOutboxConfig)

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.tx.EXPECT().Notifications().Return(f.notifications).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	return f
}

func newJob(attempts int32) shared.NotificationJob {
	return shared.NotificationJob{
		ID:       uuid.New(),
		Kind:     "reservation",
		Topic:    shared.TopicReservationCreated,
		Payload:  []byte(`{}`),
		Attempts: attempts,
	}
}

func TestNotificationDispatcher_RunOnce(t *testing.T) {
	t.Run("送信成功したジョブは送信済みになる", func(t *testing.T) {
		f := newDispatcherFixture(t)
		now := f.clock.Now()
		job := newJob(0)

		f.notifications.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, int32(10)).Return([]shared.NotificationJob{job}, nil)
		f.publisher.On("Publish", mock.Anything, job).Return(nil)
		f.notifications.EXPECT().MarkSent(gomock.Any(), gomock.Any(), job, now).Return(nil)

		n, err := f.dispatcher.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		f.publisher.AssertExpectations(t)
	})

	t.Run("送信失敗は指数バックオフで再スケジュール", func(t *testing.T) {
		f := newDispatcherFixture(t)
		now := f.clock.Now()
		job := newJob(1)

		f.notifications.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, int32(10)).Return([]shared.NotificationJob{job}, nil)
		f.publisher.On("Publish", mock.Anything, job).Return(assert.AnError)
		f.notifications.EXPECT().Reschedule(gomock.Any(), gomock.Any(), job, assert.AnError.Error(), now.Add(2*time.Second), now).Return(nil)

		n, err := f.dispatcher.RunOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("上限回数に達したジョブは失敗扱い", func(t *testing.T) {
		f := newDispatcherFixture(t)
		now := f.clock.Now()
		job := newJob(2)

		f.notifications.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), now, int32(10)).Return([]shared.NotificationJob{job}, nil)
		f.publisher.On("Publish", mock.Anything, job).Return(assert.AnError)
		f.notifications.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), job, assert.AnError.Error(), now).Return(nil)

		_, err := f.dispatcher.RunOnce(context.Background())

		require.NoError(t, err)
	})

	t.Run("取得失敗はエラーを返す", func(t *testing.T) {
		f := newDispatcherFixture(t)
		f.notifications.EXPECT().ClaimDue(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

		_, err := f.dispatcher.RunOnce(context.Background())

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestNotificationDispatcher_RetryDelay(t *testing.T) {
	d := NewNotificationDispatcher(nil, nil, nil, metrics.NewNop(), testOutboxConfig)

	assert.Equal(t, time.Second, d.retryDelay(0))
	assert.Equal(t, 4*time.Second, d.retryDelay(2))
	assert.Equal(t, maxRetryDelay, d.retryDelay(30))
}

func TestNotificationDispatcher_Stop(t *testing.T) {
	d := NewNotificationDispatcher(nil, nil, nil, metrics.NewNop(), config.OutboxConfig{PollInterval: time.Hour})

	go d.Start(context.Background())
	d.Stop()

	select {
	case <-d.doneCh:
	default:
		t.Fatal("doneCh should be closed after Stop")
	}
}
