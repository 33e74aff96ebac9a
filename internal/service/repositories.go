package service

import (
	"context"

	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts repository.ListOptions) ([]model.User, error)
	ListEmployeeIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, employeeID string, patch model.UserPatch) error
	UpdateByUsername(ctx context.Context, username string, patch model.UserPatch) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, employeeID string) error
}

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	Get(ctx context.Context, propertyID string) (*model.Property, error)
	List(ctx context.Context, opts repository.ListOptions) ([]model.Property, error)
	ListByIDs(ctx context.Context, propertyIDs []string) ([]model.Property, error)
	ListPropertyIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, propertyID string, patch model.PropertyPatch) error
	AssignTo(ctx context.Context, propertyIDs []string, clientID string) error
	Delete(ctx context.Context, propertyID string) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Get(ctx context.Context, clientID string) (*model.Client, error)
	GetByUsername(ctx context.Context, username string) (*model.Client, error)
	FindByProperty(ctx context.Context, propertyID string) (*model.Client, error)
	List(ctx context.Context, opts repository.ListOptions) ([]model.Client, error)
	ListClientIDs(ctx context.Context) ([]string, error)
	ListAssignedPropertyIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, clientID string, patch model.ClientPatch) error
	Delete(ctx context.Context, clientID string) error
}

type AttributeRepository interface {
	Create(ctx context.Context, attribute *model.GarbageAttribute) error
	Get(ctx context.Context, name string) (*model.GarbageAttribute, error)
	List(ctx context.Context) ([]model.GarbageAttribute, error)
	Update(ctx context.Context, name string, patch model.GarbageAttributePatch) error
	Delete(ctx context.Context, name string) error
}

type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	List(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error)
	DeleteOne(ctx context.Context, key model.EntryKey) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Repositories groups one backend's stores.
type Repositories struct {
	Users      UserRepository
	Properties PropertyRepository
	Clients    ClientRepository
	Attributes AttributeRepository
	Entries    EntryRepository
}
