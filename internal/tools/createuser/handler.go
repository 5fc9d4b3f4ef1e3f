package createuser

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forcekit/mcp-salesforce/internal/salesforce"
	"github.com/forcekit/mcp-salesforce/rpc"
)

// Handler orchestrates a single user creation: validate, check the profile,
// create, and format the outcome. Failures come back as error-flagged tool
// results, never as transport errors.
type Handler struct {
	api API
	log *zap.Logger
}

func New(api API, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{api: api, log: log}
}

// Create is the tool handler for salesforce_create_user.
func (h *Handler) Create(ctx context.Context, req Request) (rpc.CallToolResult, error) {
	if msgs := Validate(req); len(msgs) > 0 {
		return rpc.NewToolResultError("Validation failed:\n- " + strings.Join(msgs, "\n- ")), nil
	}

	profileID := strings.TrimSpace(req.ProfileID)
	profileName, err := h.lookupProfile(ctx, profileID)
	if err != nil {
		h.log.Warn("profile lookup failed", zap.String("profile_id", profileID), zap.Error(err))
		return rpc.NewToolResultError(fmt.Sprintf("Failed to verify profile %s: %s", profileID, err)), nil
	}
	if profileName == "" {
		return rpc.NewToolResultError(fmt.Sprintf(
			"Profile with ID '%s' was not found or is inactive. The user was not created.", profileID)), nil
	}

	payload := BuildPayload(req)
	res, err := h.api.CreateSObject(ctx, "User", payload)
	if err != nil {
		h.log.Warn("user creation failed", zap.String("username", req.Username), zap.Error(err))
		return rpc.NewToolResultError("Failed to create user: " + translateError(err.Error())), nil
	}
	if !res.Success {
		return rpc.NewToolResultError("Failed to create user: " + formatSaveErrors(res.Errors)), nil
	}

	h.log.Info("user created",
		zap.String("user_id", res.ID),
		zap.String("username", payload["Username"].(string)),
		zap.String("profile", profileName))
	return rpc.NewToolResultText(confirmation(res.ID, payload, profileName)), nil
}

// lookupProfile returns the profile's name, or "" when no row matched.
func (h *Handler) lookupProfile(ctx context.Context, profileID string) (string, error) {
	soql := fmt.Sprintf("SELECT Id, Name FROM Profile WHERE Id = '%s' LIMIT 1",
		salesforce.EscapeSOQL(profileID))
	res, err := h.api.Query(ctx, soql)
	if err != nil {
		return "", err
	}
	if res.TotalSize == 0 || len(res.Records) == 0 {
		return "", nil
	}
	name := salesforce.StringField(res.Records[0], "Name")
	if name == "" {
		name = profileID
	}
	return name, nil
}

func formatSaveErrors(errs []salesforce.SaveError) string {
	if len(errs) == 0 {
		return "the platform reported a failure without details."
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = translateError(e.String())
	}
	return strings.Join(parts, "; ")
}

func confirmation(id string, payload map[string]any, profileName string) string {
	var b strings.Builder
	b.WriteString("User created successfully!\n\n")
	fmt.Fprintf(&b, "User ID: %s\n", id)
	fmt.Fprintf(&b, "Username: %s\n", payload["Username"])
	fmt.Fprintf(&b, "Name: %s %s\n", payload["FirstName"], payload["LastName"])
	fmt.Fprintf(&b, "Email: %s\n", payload["Email"])
	fmt.Fprintf(&b, "Alias: %s\n", payload["Alias"])
	fmt.Fprintf(&b, "Profile: %s", profileName)
	return b.String()
}
