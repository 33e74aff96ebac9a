package service

import (
	"context"
	"errors"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

type ClientService struct {
	clients    ClientRepository
	properties PropertyRepository
}

func NewClientService(clients ClientRepository, properties PropertyRepository) *ClientService {
	return &ClientService{clients: clients, properties: properties}
}

type CreateClientInput struct {
	ClientID   string
	ClientName string
	ClientType string
	Phone      string
	Email      string
	Properties []string
	Username   string
	Password   string
}

type ClientUpdate struct {
	ClientName *string   `json:"client_name"`
	ClientType *string   `json:"client_type"`
	Phone      *string   `json:"phone"`
	Email      *string   `json:"email"`
	Properties *[]string `json:"properties"`
	Username   *string   `json:"username"`
	Password   *string   `json:"password"`
}

func (s *ClientService) SuggestID(ctx context.Context) (string, error) {
	ids, err := s.clients.ListClientIDs(ctx)
	if err != nil {
		return "", err
	}
	return SuggestNextID(ids, ClientIDPrefix)
}

// Create stores the client and then marks each listed property as assigned to it.
// The two writes are not atomic.
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) error {
	if err := requireFields(map[string]string{
		"client_id":   input.ClientID,
		"client_name": input.ClientName,
		"phone":       input.Phone,
		"email":       input.Email,
		"username":    input.Username,
		"password":    input.Password,
	}); err != nil {
		return err
	}

	if _, err := s.clients.Get(ctx, input.ClientID); err == nil {
		return newError(ErrConflict, "Client ID already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return err
	}

	properties := input.Properties
	if properties == nil {
		properties = []string{}
	}
	err = s.clients.Create(ctx, &model.Client{
		ClientID:     input.ClientID,
		ClientName:   input.ClientName,
		ClientType:   input.ClientType,
		Phone:        input.Phone,
		Email:        input.Email,
		Properties:   properties,
		Username:     input.Username,
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return newError(ErrConflict, "Client ID already exists")
	}
	if err != nil {
		return err
	}

	return s.properties.AssignTo(ctx, properties, input.ClientID)
}

func (s *ClientService) List(ctx context.Context, params ListParams) ([]model.ClientSummary, error) {
	opts, err := listOptions(params, clientSortFields)
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.ClientSummary, 0, len(clients))
	for _, client := range clients {
		summaries = append(summaries, client.Summary())
	}
	return summaries, nil
}

func (s *ClientService) Get(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := s.clients.Get(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Client not found")
	}
	return client, err
}

func (s *ClientService) Update(ctx context.Context, clientID string, update ClientUpdate) error {
	patch := model.ClientPatch{
		ClientName: update.ClientName,
		ClientType: update.ClientType,
		Phone:      update.Phone,
		Email:      update.Email,
		Properties: update.Properties,
		Username:   update.Username,
	}
	if update.Password != nil {
		if *update.Password == "" {
			return newError(ErrInvalidInput, "password must not be empty")
		}
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return err
		}
		patch.PasswordHash = &hash
	}
	if patch.IsEmpty() {
		return newError(ErrInvalidInput, "No fields to update")
	}

	if err := s.clients.Update(ctx, clientID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "Client not found")
		}
		return err
	}
	if patch.Properties != nil {
		return s.properties.AssignTo(ctx, *patch.Properties, clientID)
	}
	return nil
}

func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	err := s.clients.Delete(ctx, clientID)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Client not found")
	}
	return err
}

// Properties returns the full records of the properties the client lists.
func (s *ClientService) Properties(ctx context.Context, principal model.Principal, clientID string) ([]model.Property, error) {
	if err := authorizeClient(ctx, s.clients, principal, clientID); err != nil {
		return nil, err
	}
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.properties.ListByIDs(ctx, client.Properties)
}

// authorizeClient lets admins through and limits client accounts to their own client id.
func authorizeClient(ctx context.Context, clients ClientRepository, principal model.Principal, clientID string) error {
	switch {
	case principal.IsAdmin():
		return nil
	case principal.IsClient():
		own, err := clients.GetByUsername(ctx, principal.Username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrPermissionDenied, "Access denied")
			}
			return err
		}
		if own.ClientID != clientID {
			return newError(ErrPermissionDenied, "Access denied")
		}
		return nil
	default:
		return newError(ErrPermissionDenied, "Access denied")
	}
}
