package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basura/basura-api/internal/model"
)

var (
	collector = model.Principal{Username: "collector", Role: model.RoleEmployee}
	otherHand = model.Principal{Username: "other", Role: model.RoleEmployee}
	admin     = model.Principal{Username: "root", Role: model.RoleAdmin}
)

func entryInput(propertyID, clientID, timestamp string, weights map[string]any) AddEntryInput {
	return AddEntryInput{
		PropertyID:        propertyID,
		ClientID:          clientID,
		ClientType:        "Residential",
		ClientName:        "Acme",
		BoroughName:       "Queens",
		StreetName:        "Main St",
		ChutePresent:      "yes",
		Timestamp:         timestamp,
		GarbageAttributes: weights,
	}
}

func TestAddEntry(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)

	entry, err := svc.Add(ctx, collector, entryInput("PROP00001", "CLI00001", "2024-03-01T09:00:00", map[string]any{"plastic": 2.5}))
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "collector", entry.CreatedBy)

	stored, err := svc.Submissions(ctx, collector, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	weight, ok := model.Weight(stored[0].GarbageAttributes["plastic"])
	require.True(t, ok)
	assert.InDelta(t, 2.5, weight, 1e-9)
}

func TestAddEntryRequiresTruthyFields(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)

	input := entryInput("PROP00001", "CLI00001", "2024-03-01T09:00:00", nil)
	input.ChutePresent = false
	_, err := svc.Add(ctx, collector, input)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Missing required fields", err.Error())

	input = entryInput("PROP00001", "CLI00001", "", nil)
	_, err = svc.Add(ctx, collector, input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	input = entryInput("PROP00001", "CLI00001", "2024-03-01T09:00:00", nil)
	input.ChutePresent = true
	entry, err := svc.Add(ctx, collector, input)
	require.NoError(t, err)
	assert.Equal(t, true, entry.ChutePresent)
}

func TestAddEntryKeepsChutePresentType(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)

	input := entryInput("PROP00001", "CLI00001", "2024-03-01T09:00:00", nil)
	input.ChutePresent = true
	_, err := svc.Add(ctx, collector, input)
	require.NoError(t, err)
	_, err = svc.Add(ctx, collector, entryInput("PROP00001", "CLI00001", "2024-03-02T09:00:00", nil))
	require.NoError(t, err)

	stored, err := svc.Submissions(ctx, collector, 1)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, true, stored[0].ChutePresent)
	assert.Equal(t, "yes", stored[1].ChutePresent)

	body, err := json.Marshal(stored[0])
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, true, decoded["chute_present"])
}

func TestSubmissionsOnlyReturnOwnEntries(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)

	_, err := svc.Add(ctx, collector, entryInput("PROP00001", "CLI00001", "2024-03-01T09:00:00", nil))
	require.NoError(t, err)
	_, err = svc.Add(ctx, otherHand, entryInput("PROP00001", "CLI00001", "2024-03-02T09:00:00", nil))
	require.NoError(t, err)

	own, err := svc.Submissions(ctx, collector, 1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "2024-03-01T09:00:00", own[0].Timestamp)

	empty, err := svc.Submissions(ctx, collector, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.Submissions(ctx, collector, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyticsRange(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)

	for _, ts := range []string{"2024-02-28T23:00:00", "2024-03-01T00:00:00", "2024-03-15T12:00:00", "2024-03-31T08:00:00"} {
		_, err := svc.Add(ctx, collector, entryInput("PROP00001", "CLI00001", ts, nil))
		require.NoError(t, err)
	}

	entries, err := svc.Analytics(ctx, collector, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-03-01T00:00:00", entries[0].Timestamp)
	assert.Equal(t, "2024-03-15T12:00:00", entries[1].Timestamp)

	_, err = svc.Analytics(ctx, collector, "2024-03-01", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Both start_date and end_date are required", err.Error())

	_, err = svc.Analytics(ctx, collector, "03/01/2024", "2024-03-31")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestForClientFilters(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)
	require.NoError(t, repos.Clients.Create(ctx, &model.Client{ClientID: "CLI00001", Username: "acme"}))
	require.NoError(t, repos.Clients.Create(ctx, &model.Client{ClientID: "CLI00002", Username: "globex"}))

	seed := []struct{ property, client, ts string }{
		{"PROP00001", "CLI00001", "2024-03-02T10:00:00"},
		{"PROP00002", "CLI00001", "2024-03-03T10:00:00"},
		{"PROP00001", "CLI00001", "2024-04-02T10:00:00"},
		{"PROP00009", "CLI00002", "2024-03-02T10:00:00"},
	}
	for _, s := range seed {
		_, err := svc.Add(ctx, collector, entryInput(s.property, s.client, s.ts, nil))
		require.NoError(t, err)
	}

	all, err := svc.ForClient(ctx, admin, "CLI00001", ClientEntriesQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	march, err := svc.ForClient(ctx, admin, "CLI00001", ClientEntriesQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	onlyStart, err := svc.ForClient(ctx, admin, "CLI00001", ClientEntriesQuery{StartDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Len(t, onlyStart, 3)

	byProperty, err := svc.ForClient(ctx, admin, "CLI00001", ClientEntriesQuery{PropertyIDs: []string{"PROP00002"}})
	require.NoError(t, err)
	require.Len(t, byProperty, 1)
	assert.Equal(t, "PROP00002", byProperty[0].PropertyID)

	own, err := svc.ForClient(ctx, model.Principal{Username: "acme", Role: model.RoleClient}, "CLI00001", ClientEntriesQuery{})
	require.NoError(t, err)
	assert.Len(t, own, 3)

	_, err = svc.ForClient(ctx, model.Principal{Username: "globex", Role: model.RoleClient}, "CLI00001", ClientEntriesQuery{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(t)
	svc := NewEntryService(repos.Entries, repos.Clients)

	_, err := svc.Add(ctx, collector, entryInput("PROP00001", "CLI00001", "2024-03-01T09:00:00", nil))
	require.NoError(t, err)
	key := model.EntryKey{PropertyID: "PROP00001", ClientID: "CLI00001", Timestamp: "2024-03-01T09:00:00"}

	err = svc.Delete(ctx, otherHand, model.EntryKey{
		PropertyID: key.PropertyID, ClientID: key.ClientID, Timestamp: key.Timestamp, CreatedBy: "collector",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	adminKey := key
	adminKey.CreatedBy = "collector"
	require.NoError(t, svc.Delete(ctx, admin, adminKey))

	err = svc.Delete(ctx, collector, key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Entry not found", err.Error())

	assert.ErrorIs(t, svc.Delete(ctx, collector, model.EntryKey{PropertyID: "PROP00001"}), ErrInvalidInput)
}

func TestTruthy(t *testing.T) {
	assert.False(t, truthy(nil))
	assert.False(t, truthy(false))
	assert.False(t, truthy(""))
	assert.False(t, truthy(float64(0)))
	assert.False(t, truthy([]any{}))
	assert.True(t, truthy("no"))
	assert.True(t, truthy(true))
	assert.True(t, truthy(float64(3)))
	assert.True(t, truthy(map[string]any{"a": 1}))
}
