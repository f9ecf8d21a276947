package model

import "time"

// Guild is the player's persistent progression container. Every resolver
// mutates it; gold and gems never go negative after an engine operation.
type Guild struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Level          int       `json:"level"`
	Experience     int       `json:"experience"`
	Gold           int       `json:"gold"`
	Gems           int       `json:"gems"`
	TerritoryCount int       `json:"territory_count"`
	MemberCount    int       `json:"member_count"`
	Revision       int       `json:"revision"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// Starting balances for a newly founded guild
const (
	DefaultGuildName = "Shadow Guardians"
	DefaultGuildDesc = "A new guild ready for adventure"

	StartingGold = 1000
	StartingGems = 50
)

// Business constraints
const (
	MaxGuildNameLength = 100
	MaxGuildDescLength = 500
)

// UpdateGuildRequest represents a request to update guild name/description
type UpdateGuildRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks field lengths on the update request
func (r *UpdateGuildRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name != nil {
		if *r.Name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name cannot be empty"})
		}
		if len(*r.Name) > MaxGuildNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
		}
	}
	if r.Description != nil && len(*r.Description) > MaxGuildDescLength {
		errs = append(errs, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}
	return errs
}
