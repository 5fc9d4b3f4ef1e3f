package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/forcekit/mcp-salesforce/schema"
)

// Registry holds the tools, resources, and resource templates a server
// exposes. All accessors return clones with handlers stripped so callers
// can marshal descriptors without racing registration.
type Registry struct {
	mu        sync.RWMutex
	tools     []*ToolDesc
	resources []*ResourceDesc
	templates []*ResourceTemplateDesc
}

func New() *Registry { return &Registry{} }

// RegisterTool registers fn under name. The tool's input schema is reflected
// from Req's struct tags.
func RegisterTool[Req any, Resp any](r *Registry, name string, fn func(context.Context, Req) (Resp, error), opts ...ToolOption) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	desc := &ToolDesc{Name: name, Handler: HandlerFunc(fn)}
	for _, opt := range opts {
		opt(desc)
	}
	desc.InputSchema = schema.ReflectFromType(desc.Handler.Req())
	r.tools = append(r.tools, desc)
	return r
}

// RegisterResource registers a fixed-URI resource backed by fn.
func RegisterResource[Resp any](r *Registry, name, uri string, fn func(context.Context, string) (Resp, error), opts ...ResourceOption) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	desc := &ResourceDesc{Name: name, URI: uri, MimeType: "application/json", Handler: ResourceHandlerFunc(fn)}
	for _, opt := range opts {
		opt(desc)
	}
	r.resources = append(r.resources, desc)
	return r
}

// RegisterResourceTemplate registers a parameterized resource backed by fn.
// fn receives the full concrete URI being read.
func RegisterResourceTemplate[Resp any](r *Registry, name, uriTemplate string, fn func(context.Context, string) (Resp, error), opts ...ResourceTemplateOption) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	desc := &ResourceTemplateDesc{Name: name, URITemplate: uriTemplate, MimeType: "application/json", Handler: ResourceHandlerFunc(fn)}
	for _, opt := range opts {
		opt(desc)
	}
	r.templates = append(r.templates, desc)
	return r
}

func (r *Registry) Tools() []*ToolDesc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ToolDesc, len(r.tools))
	for i, t := range r.tools {
		clone := *t
		clone.Handler = nil
		out[i] = &clone
	}
	return out
}

func (r *Registry) Resources() []*ResourceDesc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ResourceDesc, len(r.resources))
	for i, res := range r.resources {
		clone := *res
		clone.Handler = nil
		out[i] = &clone
	}
	return out
}

func (r *Registry) ResourceTemplates() []*ResourceTemplateDesc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ResourceTemplateDesc, len(r.templates))
	for i, tmpl := range r.templates {
		clone := *tmpl
		clone.Handler = nil
		out[i] = &clone
	}
	return out
}

func (r *Registry) FindTool(name string) *ToolDesc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tools {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// FindResourceHandler resolves a concrete URI to a read handler: exact
// resources win, then templates by static prefix.
func (r *Registry) FindResourceHandler(uri string) (rawResourceHandler, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.resources {
		if res.URI == uri {
			return res.Handler, res.MimeType
		}
	}
	for _, tmpl := range r.templates {
		if i := strings.Index(tmpl.URITemplate, "{"); i > 0 {
			if strings.HasPrefix(uri, tmpl.URITemplate[:i]) && len(uri) > len(tmpl.URITemplate[:i]) {
				return tmpl.Handler, tmpl.MimeType
			}
		}
	}
	return nil, ""
}
