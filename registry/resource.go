package registry

import "context"

// ResourceDesc describes a registered resource as it appears in
// resources/list.
type ResourceDesc struct {
	Name        string             `json:"name"`
	URI         string             `json:"uri"`
	Description string             `json:"description,omitempty"`
	MimeType    string             `json:"mimeType,omitempty"`
	Handler     rawResourceHandler `json:"-"`
}

type rawResourceHandler interface {
	Read(ctx context.Context, uri string) (any, error)
}

type resourceHandlerFunc[Resp any] struct {
	f func(context.Context, string) (Resp, error)
}

func (h *resourceHandlerFunc[Resp]) Read(ctx context.Context, uri string) (any, error) {
	return h.f(ctx, uri)
}

func ResourceHandlerFunc[Resp any](fn func(context.Context, string) (Resp, error)) rawResourceHandler {
	return &resourceHandlerFunc[Resp]{f: fn}
}

type ResourceOption func(*ResourceDesc)

func WithResourceDescription(desc string) ResourceOption {
	return func(r *ResourceDesc) { r.Description = desc }
}

func WithMimeType(mime string) ResourceOption {
	return func(r *ResourceDesc) { r.MimeType = mime }
}
