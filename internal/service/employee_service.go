package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/basura/basura-api/internal/auth"
	"github.com/basura/basura-api/internal/model"
	"github.com/basura/basura-api/internal/repository"
)

type EmployeeService struct {
	users UserRepository
}

func NewEmployeeService(users UserRepository) *EmployeeService {
	return &EmployeeService{users: users}
}

type CreateEmployeeInput struct {
	EmployeeID    string
	Name          model.PersonName
	Contact       string
	Email         string
	Username      string
	BankAccountNo string
	Password      string
	Role          string
	IDProof       *string
	ProfilePhoto  *string
}

// EmployeeUpdate holds the fields a caller supplied. Password is hashed before storing.
type EmployeeUpdate struct {
	EmployeeID    *string           `json:"employee_id"`
	Username      *string           `json:"username"`
	Name          *model.PersonName `json:"name"`
	Contact       *string           `json:"contact"`
	Email         *string           `json:"email"`
	BankAccountNo *string           `json:"bank_account_no"`
	Password      *string           `json:"password"`
	Role          *string           `json:"role"`
}

func (s *EmployeeService) SuggestID(ctx context.Context) (string, error) {
	ids, err := s.users.ListEmployeeIDs(ctx)
	if err != nil {
		return "", err
	}
	return SuggestNextID(ids, EmployeeIDPrefix)
}

func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) error {
	if err := requireFields(map[string]string{
		"employee_id":     input.EmployeeID,
		"firstname":       input.Name.FirstName,
		"lastname":        input.Name.LastName,
		"email":           input.Email,
		"username":        input.Username,
		"bank_account_no": input.BankAccountNo,
		"password":        input.Password,
		"role":            input.Role,
	}); err != nil {
		return err
	}
	role, ok := model.ParseRole(input.Role)
	if !ok || role == model.RoleClient {
		return newError(ErrInvalidInput, "Invalid role")
	}

	if _, err := s.users.GetByEmployeeID(ctx, input.EmployeeID); err == nil {
		return newError(ErrConflict, "Employee ID already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, &model.User{
		EmployeeID:    input.EmployeeID,
		Username:      input.Username,
		Name:          input.Name,
		Contact:       input.Contact,
		Email:         input.Email,
		BankAccountNo: input.BankAccountNo,
		PasswordHash:  hash,
		Role:          role,
		IDProof:       input.IDProof,
		ProfilePhoto:  input.ProfilePhoto,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return newError(ErrConflict, "Username already exists")
	}
	return err
}

func (s *EmployeeService) List(ctx context.Context, params ListParams) ([]model.EmployeeSummary, error) {
	opts, err := listOptions(params, employeeSortFields)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.EmployeeSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*model.User, error) {
	user, err := s.users.GetByEmployeeID(ctx, employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Employee not found")
	}
	return user, err
}

func (s *EmployeeService) Update(ctx context.Context, employeeID string, update EmployeeUpdate) error {
	patch := model.UserPatch{
		EmployeeID:    update.EmployeeID,
		Username:      update.Username,
		Name:          update.Name,
		Contact:       update.Contact,
		Email:         update.Email,
		BankAccountNo: update.BankAccountNo,
	}
	if update.Role != nil {
		role, ok := model.ParseRole(*update.Role)
		if !ok || role == model.RoleClient {
			return newError(ErrInvalidInput, "Invalid role")
		}
		patch.Role = &role
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
	if update.EmployeeID != nil && *update.EmployeeID != employeeID {
		if _, err := s.users.GetByEmployeeID(ctx, *update.EmployeeID); err == nil {
			return newError(ErrConflict, "Employee ID already exists")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}

	err := s.users.Update(ctx, employeeID, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "Employee not found")
	case errors.Is(err, repository.ErrDuplicate):
		return newError(ErrConflict, "Username already exists")
	}
	return err
}

func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	err := s.users.Delete(ctx, employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "Employee not found")
	}
	return err
}

// requireFields reports the first blank field in a stable order.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return newError(ErrInvalidInput, "Missing required fields: %s", strings.Join(missing, ", "))
}
