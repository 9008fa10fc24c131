package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	inserted    []Entry
	entries     []Entry
	insertErr   error
	lastLimit   int
	lastOffset  int
	totalReturn int
}

func (s *stubRepo) Insert(ctx context.Context, entry Entry) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.inserted = append(s.inserted, entry)
	return "log_test", nil
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.entries, nil
}

func (s *stubRepo) Count(ctx context.Context) (int, error) {
	return s.totalReturn, nil
}

func TestRecordAppendsOneEntry(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)

	id, err := svc.Record(context.Background(), Entry{ActorID: "user_1", Action: "page.create", TargetType: "page", TargetID: "page_9"})
	require.NoError(t, err)
	assert.Equal(t, "log_test", id)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "user_1", repo.inserted[0].ActorID)
	assert.Equal(t, "page.create", repo.inserted[0].Action)
}

func TestRecordRequiresAction(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)
	_, err := svc.Record(context.Background(), Entry{ActorID: "user_1"})
	assert.Error(t, err)
}

func TestRecordSurfacesInsertFailure(t *testing.T) {
	repo := &stubRepo{insertErr: errors.New("connection refused")}
	svc := NewService(repo, nil)
	_, err := svc.Record(context.Background(), Entry{ActorID: "user_1", Action: "login"})
	assert.Error(t, err)
}

func TestListClampsWindow(t *testing.T) {
	repo := &stubRepo{entries: []Entry{{ID: "log_1"}}, totalReturn: 42}
	svc := NewService(repo, nil)

	entries, total, err := svc.List(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 42, total)
	assert.Equal(t, 20, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)

	_, _, err = svc.List(context.Background(), 500, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)
	assert.Equal(t, 10, repo.lastOffset)
}
