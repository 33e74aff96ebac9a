package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

const dateLayout = "2006-01-02"

type EntryService struct {
	entries EntryRepository
	clients ClientRepository
}

func NewEntryService(entries EntryRepository, clients ClientRepository) *EntryService {
	return &EntryService{entries: entries, clients: clients}
}

// AddEntryInput mirrors the collector payload. Text fields stay untyped so
// that presence is judged the way collectors have always been validated.
type AddEntryInput struct {
	PropertyID        any            `json:"property_id"`
	ClientID          any            `json:"client_id"`
	ClientType        any            `json:"client_type"`
	ClientName        any            `json:"client_name"`
	BoroughName       any            `json:"borough_name"`
	StreetName        any            `json:"street_name"`
	ChutePresent      any            `json:"chute_present"`
	Timestamp         any            `json:"timestamp"`
	GarbageAttributes map[string]any `json:"garbage_attributes"`
}

type ClientEntriesQuery struct {
	StartDate   string
	EndDate     string
	PropertyIDs []string
}

// Add records an entry for the caller. Every field must be truthy, so a
// chute_present of false is rejected as missing.
func (s *EntryService) Add(ctx context.Context, principal model.Principal, input AddEntryInput) (*model.Entry, error) {
	required := []any{
		input.PropertyID, input.ClientID, input.ClientType, input.ClientName,
		input.BoroughName, input.StreetName, input.ChutePresent, input.Timestamp,
	}
	for _, value := range required {
		if !truthy(value) {
			return nil, newError(ErrInvalidInput, "Missing required fields")
		}
	}

	attributes := datatypes.JSONMap{}
	for name, weight := range input.GarbageAttributes {
		attributes[name] = weight
	}

	entry := &model.Entry{
		ID:                uuid.NewString(),
		PropertyID:        stringify(input.PropertyID),
		ClientID:          stringify(input.ClientID),
		ClientType:        stringify(input.ClientType),
		ClientName:        stringify(input.ClientName),
		BoroughName:       stringify(input.BoroughName),
		StreetName:        stringify(input.StreetName),
		ChutePresent:      input.ChutePresent,
		Timestamp:         stringify(input.Timestamp),
		GarbageAttributes: attributes,
		CreatedBy:         principal.Username,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Submissions returns one page of the caller's own entries.
func (s *EntryService) Submissions(ctx context.Context, principal model.Principal, page int) ([]model.Entry, error) {
	if page < 1 {
		return nil, newError(ErrInvalidInput, "Invalid page")
	}
	return s.entries.List(ctx, model.EntryFilter{
		CreatedBy: principal.Username,
		Offset:    (page - 1) * repository.DefaultPerPage,
		Limit:     repository.DefaultPerPage,
	})
}

// Analytics returns the caller's entries whose timestamp falls lexically
// between the two dates at midnight, both ends inclusive.
func (s *EntryService) Analytics(ctx context.Context, principal model.Principal, startDate, endDate string) ([]model.Entry, error) {
	if startDate == "" || endDate == "" {
		return nil, newError(ErrInvalidInput, "Both start_date and end_date are required")
	}
	from, to, err := timestampRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.entries.List(ctx, model.EntryFilter{CreatedBy: principal.Username, From: from, To: to})
}

// ForClient lists a client's entries. The date range applies only when both
// dates are given; the property filter applies when any id is given.
func (s *EntryService) ForClient(ctx context.Context, principal model.Principal, clientID string, query ClientEntriesQuery) ([]model.Entry, error) {
	if err := authorizeClient(ctx, s.clients, principal, clientID); err != nil {
		return nil, err
	}
	filter, err := clientEntryFilter(clientID, query)
	if err != nil {
		return nil, err
	}
	return s.entries.List(ctx, filter)
}

// Delete removes one entry. Employees may only delete their own entries.
func (s *EntryService) Delete(ctx context.Context, principal model.Principal, key model.EntryKey) error {
	if principal.IsEmployee() || key.CreatedBy == "" {
		key.CreatedBy = principal.Username
	}
	if key.PropertyID == "" || key.ClientID == "" || key.Timestamp == "" {
		return newError(ErrInvalidInput, "Missing required fields")
	}

	err := s.entries.DeleteOne(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Entry not found")
	}
	return err
}

func clientEntryFilter(clientID string, query ClientEntriesQuery) (model.EntryFilter, error) {
	filter := model.EntryFilter{ClientID: clientID, PropertyIDs: query.PropertyIDs}
	if query.StartDate != "" && query.EndDate != "" {
		from, to, err := timestampRange(query.StartDate, query.EndDate)
		if err != nil {
			return model.EntryFilter{}, err
		}
		filter.From, filter.To = from, to
	}
	return filter, nil
}

// timestampRange turns two YYYY-MM-DD dates into the ISO strings entries are compared against.
func timestampRange(startDate, endDate string) (string, string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return "", "", newError(ErrInvalidInput, "Invalid start_date, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return "", "", newError(ErrInvalidInput, "Invalid end_date, expected YYYY-MM-DD")
	}
	const isoLayout = "2006-01-02T15:04:05"
	return start.Format(isoLayout), end.Format(isoLayout), nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
