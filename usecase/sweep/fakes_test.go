package sweep

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fastygo/tasknotify/domain"
)

type fakeTaskRepo struct {
	tasks []domain.Task
	err   error
	calls atomic.Int32
}

func (f *fakeTaskRepo) ListAll(context.Context) ([]domain.Task, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeTaskRepo) Ping(context.Context) error { return f.err }

type fakeUserRepo struct {
	users map[string]*domain.User
	errs  map[string]error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []sentMail
	reject map[string]bool
	delay  time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeNotifier) Send(_ context.Context, to, subject, body string) bool {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxInFlight.Load()
		if cur <= prev || f.maxInFlight.CompareAndSwap(prev, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return !f.reject[to]
}

func (f *fakeNotifier) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}

type fakeLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time
	getErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[string]time.Time)}
}

func (f *fakeLedger) LastNotified(_ context.Context, taskID string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return time.Time{}, f.getErr
	}
	due, ok := f.entries[taskID]
	if !ok {
		return time.Time{}, domain.ErrNotNotified
	}
	return due, nil
}

func (f *fakeLedger) MarkNotified(_ context.Context, taskID string, dueDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[taskID] = dueDate
	return nil
}

func (f *fakeLedger) Ping(context.Context) error { return nil }

func task(id, owner string, due time.Time) domain.Task {
	return domain.Task{
		ID:          id,
		UserID:      owner,
		Title:       "title " + id,
		Description: "description " + id,
		DueDate:     &due,
		CreatedAt:   due.Add(-72 * time.Hour),
	}
}
