// Package session keeps the automation objects an MCP client is working
// with, addressable by opaque ids across tool calls.
//
// A Session is not safe for concurrent use; the server only touches it
// from the apartment thread.
package session

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// ObjectKey marks an object reference in tool arguments and results.
const ObjectKey = "$object"

var (
	ErrNotFound   = errors.New("object not found")
	ErrNotAllowed = errors.New("program id is not allowed")
)

// Activator attaches to automation servers that are already running.
type Activator interface {
	Active(progID string) (comobject.Handle, comobject.Descriptor, error)
}

// ObjectInfo describes one registered object.
type ObjectInfo struct {
	ID       string `json:"id" yaml:"id"`
	Type     string `json:"type" yaml:"type"`
	Parent   string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children int    `json:"children" yaml:"children"`
}

type entry struct {
	id     string
	proxy  *comobject.Proxy
	parent string
}

type Session struct {
	binder  comobject.Binder
	allowed []string
	entries map[string]*entry
	ids     map[*comobject.Proxy]string
	order   []string
	logger  hclog.Logger
}

// New creates a session over b. An empty allowed list permits every
// program id.
func New(b comobject.Binder, allowed []string, logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Session{
		binder:  b,
		allowed: allowed,
		entries: map[string]*entry{},
		ids:     map[*comobject.Proxy]string{},
		logger:  logger,
	}
}

// Allowed reports whether progID may be created.
func (s *Session) Allowed(progID string) bool {
	return len(s.allowed) == 0 || slices.Contains(s.allowed, progID)
}

// Open returns a root proxy for progID without registering it. When attach
// is set and the binder can reach running servers, a running instance is
// preferred over launching a new one. launched reports which happened.
func (s *Session) Open(progID string, attach bool) (p *comobject.Proxy, launched bool, err error) {
	if !s.Allowed(progID) {
		return nil, false, fmt.Errorf("%w: %s", ErrNotAllowed, progID)
	}
	if activator, ok := s.binder.(Activator); ok && attach {
		h, d, err := activator.Active(progID)
		if err == nil {
			s.logger.Debug("attached to running instance", "prog_id", progID)
			return comobject.Wrap(s.binder, d, h), false, nil
		}
		s.logger.Debug("no running instance", "prog_id", progID, "error", err)
	}
	p, err = comobject.New(s.binder, progID)
	if err != nil {
		return nil, false, err
	}
	s.logger.Debug("created instance", "prog_id", progID)
	return p, true, nil
}

// Create opens progID and registers the proxy as a root object.
func (s *Session) Create(progID string, attach bool) (string, error) {
	p, _, err := s.Open(progID, attach)
	if err != nil {
		return "", err
	}
	return s.register(p, ""), nil
}

func (s *Session) register(p *comobject.Proxy, parent string) string {
	if id, ok := s.ids[p]; ok {
		return id
	}
	id := uuid.NewString()
	s.entries[id] = &entry{id: id, proxy: p, parent: parent}
	s.ids[p] = id
	s.order = append(s.order, id)
	return id
}

// Lookup returns the live proxy registered under id.
func (s *Session) Lookup(id string) (*comobject.Proxy, error) {
	e, ok := s.entries[id]
	if !ok || e.proxy.Disposed() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e.proxy, nil
}

// Import resolves object references in a decoded JSON value into proxies.
// Integral JSON numbers become int, which automation servers expect for
// counts, indexes and enumeration values.
func (s *Session) Import(v any) (any, error) {
	switch value := v.(type) {
	case map[string]any:
		ref, ok := value[ObjectKey].(string)
		if !ok || len(value) > 2 {
			return nil, fmt.Errorf("unsupported object argument: expected {%q: id}", ObjectKey)
		}
		return s.Lookup(ref)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			imported, err := s.Import(item)
			if err != nil {
				return nil, err
			}
			out[i] = imported
		}
		return out, nil
	case float64:
		if value == math.Trunc(value) && value >= math.MinInt32 && value <= math.MaxInt32 {
			return int(value), nil
		}
		return value, nil
	}
	return v, nil
}

// Export registers the proxies in a result under parent and returns a
// value that can be encoded as JSON.
func (s *Session) Export(parent string, v any) any {
	switch value := v.(type) {
	case *comobject.Proxy:
		id := s.register(value, parent)
		return map[string]any{ObjectKey: id, "type": value.Descriptor().Name()}
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = s.Export(parent, item)
		}
		return out
	}
	if v == nil || comobject.IsPrimitive(v) {
		return v
	}
	return fmt.Sprintf("%v", v)
}

// Release disposes the object and everything it owns.
func (s *Session) Release(id string) error {
	p, err := s.Lookup(id)
	if err != nil {
		return err
	}
	err = p.Dispose()
	s.prune()
	return err
}

// prune forgets every disposed proxy.
func (s *Session) prune() {
	order := s.order[:0]
	for _, id := range s.order {
		e := s.entries[id]
		if e.proxy.Disposed() {
			delete(s.entries, id)
			delete(s.ids, e.proxy)
			continue
		}
		order = append(order, id)
	}
	s.order = order
}

// List returns the live objects in registration order.
func (s *Session) List() []ObjectInfo {
	s.prune()
	out := make([]ObjectInfo, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		out = append(out, ObjectInfo{
			ID:       id,
			Type:     e.proxy.Descriptor().Name(),
			Parent:   e.parent,
			Children: len(e.proxy.Children()),
		})
	}
	return out
}

// Close releases every root object, most recent first.
func (s *Session) Close() error {
	var result *multierror.Error
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.entries[s.order[i]]
		if e.parent != "" {
			continue
		}
		if err := e.proxy.Dispose(); err != nil {
			s.logger.Warn("failed to release object", "id", e.id, "error", err)
			result = multierror.Append(result, err)
		}
	}
	s.prune()
	if result != nil && len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result.ErrorOrNil()
}
