package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"

	"job-board/internal/auth"
	"job-board/internal/domain"
	"job-board/internal/repository"
	"job-board/internal/storage"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	byID      map[string]domain.User
	createErr func(*domain.User) error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.User{}}
}

func (f *fakeUserRepo) Init(context.Context) error { return nil }

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		if err := f.createErr(u); err != nil {
			return err
		}
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repository.ErrAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]domain.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]domain.Job{}}
}

func (f *fakeJobRepo) Init(context.Context) error { return nil }

func (f *fakeJobRepo) Create(_ context.Context, j *domain.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.PostedOn.IsZero() {
		j.PostedOn = time.Now().UTC()
	}
	f.jobs[j.ID] = *j
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (f *fakeJobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Job{}
	for _, j := range f.jobs {
		if j.Expired && !filter.IncludeExpired {
			continue
		}
		if filter.PostedBy != "" && j.PostedBy != filter.PostedBy {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].PostedOn.After(out[k].PostedOn) })
	return out, nil
}

func (f *fakeJobRepo) SetExpired(_ context.Context, id string, expired bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	j.Expired = expired
	f.jobs[id] = j
	return nil
}

type fakeApplicationRepo struct {
	mu        sync.Mutex
	apps      map[string]domain.Application
	createErr error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]domain.Application{}}
}

func (f *fakeApplicationRepo) Init(context.Context) error { return nil }

func (f *fakeApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.apps[a.ID] = *a
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f *fakeApplicationRepo) filter(keep func(domain.Application) bool) []domain.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Application{}
	for _, a := range f.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeApplicationRepo) ListByApplicant(_ context.Context, id string) ([]domain.Application, error) {
	return f.filter(func(a domain.Application) bool { return a.ApplicantID == id }), nil
}

func (f *fakeApplicationRepo) ListByEmployer(_ context.Context, id string) ([]domain.Application, error) {
	return f.filter(func(a domain.Application) bool { return a.EmployerID == id }), nil
}

func (f *fakeApplicationRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.apps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.apps, id)
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	types     map[string]string
	deleted   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Upload(_ context.Context, in storage.UploadInput) (storage.Object, error) {
	if f.uploadErr != nil {
		return storage.Object{}, f.uploadErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return storage.Object{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[in.Key] = data
	f.types[in.Key] = in.ContentType
	return storage.Object{Key: in.Key, URL: "https://cdn.test/" + in.Key, Size: int64(len(data))}, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return errors.New("no such key")
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func newTestLogger() (logrus.FieldLogger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logger, hook
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: "test-secret", Lifetime: time.Hour})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return tokens
}

func newTestCredentials() *auth.Credentials {
	return auth.NewCredentials(bcrypt.MinCost)
}
