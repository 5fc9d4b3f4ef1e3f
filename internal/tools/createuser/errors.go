package createuser

import "strings"

// Known platform error codes, matched as substrings because Salesforce
// embeds them in longer exception messages.
const (
	codeDuplicateUsername = "DUPLICATE_USERNAME"
	codeDuplicateValue    = "DUPLICATE_VALUE"
	codeInvalidEmail      = "INVALID_EMAIL_ADDRESS"
	codeCustomValidation  = "FIELD_CUSTOM_VALIDATION_EXCEPTION"
)

// translateError rewrites known Salesforce error messages into friendlier
// text and passes everything else through verbatim.
func translateError(msg string) string {
	switch {
	case strings.Contains(msg, codeDuplicateUsername):
		return "That username is already taken. Usernames must be unique across all Salesforce orgs; choose a different username and try again."
	case strings.Contains(msg, codeDuplicateValue):
		return "A user with this alias or email already exists. Choose a different alias or email and try again."
	case strings.Contains(msg, codeInvalidEmail):
		return "Salesforce rejected the email address as invalid. Check the email format and try again."
	case strings.Contains(msg, codeCustomValidation):
		return "A custom validation rule on the User object blocked this creation. Review the org's validation rules or adjust the input."
	default:
		return msg
	}
}
