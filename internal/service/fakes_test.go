package service

import (
	"context"
	"sync"
	"time"

	"petadopt/internal/entity"

	"github.com/google/uuid"
)

type sentEmail struct {
	to    string
	token string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: email, token: token})
	return nil
}

func (f *fakeEmailSender) last() sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentEmail{}
	}
	return f.sent[len(f.sent)-1]
}

type fakeSecurityLogs struct {
	mu      sync.Mutex
	entries []entity.SecurityLog
}

func (f *fakeSecurityLogs) Log(ctx context.Context, log *entity.SecurityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeSecurityLogs) actions() []entity.SecurityAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	actions := make([]entity.SecurityAction, 0, len(f.entries))
	for _, entry := range f.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeTaskRepo struct {
	tasks     []entity.Task
	createErr error
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	task.ID = uuid.New()
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepo) List(ctx context.Context) ([]entity.Task, error) {
	return f.tasks, nil
}

func (f *fakeTaskRepo) Assign(ctx context.Context, taskID uuid.UUID, volunteerID uuid.UUID) (*entity.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].AssignedTo = &volunteerID
			f.tasks[i].Status = entity.TaskAssigned
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, nil
}

type fakeApplicationRepo struct {
	applications []entity.Application
}

func (f *fakeApplicationRepo) Create(ctx context.Context, application *entity.Application) error {
	application.ID = uuid.New()
	f.applications = append(f.applications, *application)
	return nil
}

func (f *fakeApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	for i := range f.applications {
		if f.applications[i].ID == id {
			application := f.applications[i]
			return &application, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) ListByAdopter(ctx context.Context, adopterID uuid.UUID) ([]entity.Application, error) {
	var out []entity.Application
	for _, application := range f.applications {
		if application.AdopterID == adopterID {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) List(ctx context.Context, status entity.ApplicationStatus) ([]entity.Application, error) {
	var out []entity.Application
	for _, application := range f.applications {
		if status == "" || application.Status == status {
			out = append(out, application)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus, reviewer uuid.UUID) (*entity.Application, error) {
	for i := range f.applications {
		if f.applications[i].ID == id {
			f.applications[i].Status = status
			f.applications[i].ReviewedBy = &reviewer
			application := f.applications[i]
			return &application, nil
		}
	}
	return nil, nil
}
