package service

import (
	"strings"

	"github.com/basura/basura-api/internal/repository"
)

// ListParams are the paging and sorting values a caller supplied.
type ListParams struct {
	Page      int
	SortBy    string
	SortOrder string
}

var (
	employeeSortFields = []string{"employee_id", "name.firstname", "email"}
	propertySortFields = []string{"property_id", "property_manager_name", "email"}
	clientSortFields   = []string{"client_id", "client_name", "email"}
)

func listOptions(params ListParams, allowed []string) (repository.ListOptions, error) {
	if params.Page < 1 {
		return repository.ListOptions{}, newError(ErrInvalidInput, "Invalid page")
	}

	sortBy := strings.TrimSpace(params.SortBy)
	if sortBy == "" {
		sortBy = allowed[0]
	}
	if !contains(allowed, sortBy) {
		return repository.ListOptions{}, newError(ErrInvalidInput, "Invalid sort field")
	}

	return repository.ListOptions{
		Page:    params.Page,
		PerPage: repository.DefaultPerPage,
		SortBy:  sortBy,
		Desc:    params.SortOrder != "" && params.SortOrder != "asc",
	}, nil
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
