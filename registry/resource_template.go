package registry

// ResourceTemplateDesc describes a parameterized resource as it appears in
// resources/templates/list. Reads are matched against the template's static
// prefix (everything before the first "{").
type ResourceTemplateDesc struct {
	Name        string             `json:"name"`
	URITemplate string             `json:"uriTemplate"`
	Description string             `json:"description,omitempty"`
	MimeType    string             `json:"mimeType,omitempty"`
	Handler     rawResourceHandler `json:"-"`
}

type ResourceTemplateOption func(*ResourceTemplateDesc)

func WithTemplateDescription(desc string) ResourceTemplateOption {
	return func(r *ResourceTemplateDesc) { r.Description = desc }
}

func WithTemplateMimeType(mime string) ResourceTemplateOption {
	return func(r *ResourceTemplateDesc) { r.MimeType = mime }
}
