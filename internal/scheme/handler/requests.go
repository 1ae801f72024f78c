package handler

import (
	"yojana/internal/scheme/models"
)

// CreateSchemeRequest is the admin payload for adding a scheme to the catalog.
type CreateSchemeRequest struct {
	Name        string        `json:"name"`
	Provider    string        `json:"provider"`
	Description string        `json:"description,omitempty"`
	Rules       []models.Rule `json:"rules"`
}

// Validate defers to the domain model so rule checks live in one place.
func (r *CreateSchemeRequest) Validate() error {
	scheme := r.Scheme()
	return scheme.Validate()
}

// Scheme builds the domain object the service stores.
func (r *CreateSchemeRequest) Scheme() *models.Scheme {
	return &models.Scheme{
		Name:        r.Name,
		Provider:    r.Provider,
		Description: r.Description,
		Rules:       r.Rules,
	}
}
