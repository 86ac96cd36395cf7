package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zconst"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/negokaz/comobject-mcp-server/internal/apartment"
	"github.com/negokaz/comobject-mcp-server/internal/comobject"
	"github.com/negokaz/comobject-mcp-server/internal/session"
)

// Host gives tool handlers serialized access to the automation session.
type Host struct {
	apartment *apartment.Apartment
	session   *session.Session
	timeout   time.Duration
	attach    bool
	logger    hclog.Logger
}

type HostOptions struct {
	// CallTimeout bounds each tool call. Zero means no limit.
	CallTimeout time.Duration
	// AttachRunning makes document tools reuse running applications.
	AttachRunning bool
	Logger        hclog.Logger
}

func NewHost(a *apartment.Apartment, s *session.Session, opts HostOptions) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Host{
		apartment: a,
		session:   s,
		timeout:   opts.CallTimeout,
		attach:    opts.AttachRunning,
		logger:    logger,
	}
}

// Do runs fn on the apartment thread.
func (h *Host) Do(ctx context.Context, fn func(s *session.Session) error) error {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	return h.apartment.Do(ctx, func() error {
		return fn(h.session)
	})
}

// open starts or attaches to progID for the length of one document flow.
// The returned release disposes every object the flow obtained.
func (h *Host) open(s *session.Session, progID string) (app *comobject.Proxy, launched bool, release func(*error), err error) {
	app, launched, err = s.Open(progID, h.attach)
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to start %s: %w", progID, err)
	}
	h.logger.Debug("opened application", "prog_id", progID, "launched", launched)
	release = func(errp *error) {
		if err := app.Dispose(); err != nil {
			h.logger.Warn("failed to release application objects", "prog_id", progID, "error", err)
			*errp = multierror.Append(*errp, err).ErrorOrNil()
		}
	}
	return app, launched, release, nil
}

// withValue declares an argument that accepts any JSON value.
func withValue(name string, opts ...mcp.PropertyOption) mcp.ToolOption {
	return func(t *mcp.Tool) {
		schema := map[string]any{}
		for _, opt := range opts {
			opt(schema)
		}
		if required, ok := schema["required"].(bool); ok {
			delete(schema, "required")
			if required {
				t.InputSchema.Required = append(t.InputSchema.Required, name)
			}
		}
		t.InputSchema.Properties[name] = schema
	}
}

// AbsolutePathTest rejects paths that are not absolute on the host OS.
func AbsolutePathTest() z.Test {
	return z.TestFunc(zconst.IssueCodeCustom, func(val any, ctx z.Ctx) bool {
		path, ok := val.(string)
		return ok && filepath.IsAbs(path)
	}, z.Message("must be an absolute path"))
}

func jsonBlock(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return "```json\n" + string(data) + "\n```\n", nil
}
