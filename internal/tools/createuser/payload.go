package createuser

import "strings"

// Org-typical defaults applied when the caller omits locale settings.
const (
	DefaultTimeZone      = "America/New_York"
	DefaultLocale        = "en_US"
	DefaultEmailEncoding = "UTF-8"
	DefaultLanguage      = "en_US"
)

// BuildPayload maps a validated request onto the Salesforce User field
// names. All values are trimmed; optional fields are included only when
// non-empty after trimming; new users are always created active.
func BuildPayload(req Request) map[string]any {
	payload := map[string]any{
		"Username":          strings.TrimSpace(req.Username),
		"Email":             strings.TrimSpace(req.Email),
		"FirstName":         strings.TrimSpace(req.FirstName),
		"LastName":          strings.TrimSpace(req.LastName),
		"Alias":             strings.TrimSpace(req.Alias),
		"ProfileId":         strings.TrimSpace(req.ProfileID),
		"TimeZoneSidKey":    orDefault(req.TimeZoneSidKey, DefaultTimeZone),
		"LocaleSidKey":      orDefault(req.LocaleSidKey, DefaultLocale),
		"EmailEncodingKey":  orDefault(req.EmailEncodingKey, DefaultEmailEncoding),
		"LanguageLocaleKey": orDefault(req.LanguageLocaleKey, DefaultLanguage),
		"IsActive":          true,
	}
	setIfPresent(payload, "Title", req.Title)
	setIfPresent(payload, "Department", req.Department)
	setIfPresent(payload, "Phone", req.Phone)
	return payload
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func setIfPresent(payload map[string]any, key, v string) {
	if v = strings.TrimSpace(v); v != "" {
		payload[key] = v
	}
}
