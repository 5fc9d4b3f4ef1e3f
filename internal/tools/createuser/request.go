// Package createuser implements the salesforce_create_user tool: field
// validation, the User payload mapping, and the create orchestration with
// its profile pre-check and platform error translation.
package createuser

import (
	"context"

	"github.com/forcekit/mcp-salesforce/internal/salesforce"
)

// ToolName is the name the tool is registered under.
const ToolName = "salesforce_create_user"

// ToolDescription is shown to MCP clients in tools/list.
const ToolDescription = "Create a new Salesforce user. Validates the input fields, " +
	"verifies the referenced profile exists, and creates the User record."

// Request is the tool input. Required fields must all be present; the rest
// fall back to org-typical defaults when omitted.
type Request struct {
	Username          string `json:"username" validate:"required,email" desc:"Login name, in email format"`
	Email             string `json:"email" validate:"required,email" desc:"Email address for the new user"`
	FirstName         string `json:"firstName" validate:"required" desc:"First name"`
	LastName          string `json:"lastName" validate:"required" desc:"Last name"`
	Alias             string `json:"alias" validate:"required,useralias" desc:"Short user alias, 1-8 alphanumeric characters"`
	ProfileID         string `json:"profileId" validate:"required,sfid" desc:"ID of the profile to assign, 15 or 18 characters"`
	Title             string `json:"title,omitempty" desc:"Job title"`
	Department        string `json:"department,omitempty" desc:"Department name"`
	Phone             string `json:"phone,omitempty" validate:"omitempty,loosephone" desc:"Phone number"`
	TimeZoneSidKey    string `json:"timeZoneSidKey,omitempty" desc:"Time zone, e.g. America/New_York"`
	LocaleSidKey      string `json:"localeSidKey,omitempty" desc:"Locale, e.g. en_US"`
	EmailEncodingKey  string `json:"emailEncodingKey,omitempty" desc:"Email encoding, e.g. UTF-8"`
	LanguageLocaleKey string `json:"languageLocaleKey,omitempty" desc:"Language locale, e.g. en_US"`
}

// API is the slice of the Salesforce client the tool needs.
type API interface {
	Query(ctx context.Context, soql string) (*salesforce.QueryResult, error)
	CreateSObject(ctx context.Context, objectType string, fields map[string]any) (*salesforce.SaveResult, error)
}
