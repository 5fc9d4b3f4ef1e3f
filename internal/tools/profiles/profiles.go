// Package profiles exposes the org's profiles as MCP resources, so a model
// can look up a valid profile ID before calling salesforce_create_user.
package profiles

import (
	"context"
	"fmt"
	"strings"

	"github.com/forcekit/mcp-salesforce/internal/salesforce"
)

const (
	// ListURI is the fixed resource listing every profile.
	ListURI = "salesforce://profiles"
	// TemplateURI reads a single profile by ID.
	TemplateURI = "salesforce://profiles/{id}"
)

// Profile is the subset of profile fields exposed to clients.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserType string `json:"userType,omitempty"`
}

type API interface {
	Query(ctx context.Context, soql string) (*salesforce.QueryResult, error)
}

type Source struct {
	api API
}

func New(api API) *Source { return &Source{api: api} }

// List returns all profiles, ordered by name.
func (s *Source) List(ctx context.Context, uri string) ([]Profile, error) {
	res, err := s.api.Query(ctx, "SELECT Id, Name, UserType FROM Profile ORDER BY Name")
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]Profile, 0, len(res.Records))
	for _, rec := range res.Records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

// Read returns the single profile addressed by salesforce://profiles/{id}.
func (s *Source) Read(ctx context.Context, uri string) (Profile, error) {
	id := strings.TrimPrefix(uri, strings.TrimSuffix(TemplateURI, "{id}"))
	if id == "" || strings.ContainsAny(id, "/'\\") {
		return Profile{}, fmt.Errorf("invalid profile uri %q", uri)
	}
	soql := fmt.Sprintf("SELECT Id, Name, UserType FROM Profile WHERE Id = '%s' LIMIT 1",
		salesforce.EscapeSOQL(id))
	res, err := s.api.Query(ctx, soql)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return Profile{}, fmt.Errorf("profile %s not found", id)
	}
	return fromRecord(res.Records[0]), nil
}

func fromRecord(rec map[string]any) Profile {
	return Profile{
		ID:       salesforce.StringField(rec, "Id"),
		Name:     salesforce.StringField(rec, "Name"),
		UserType: salesforce.StringField(rec, "UserType"),
	}
}
