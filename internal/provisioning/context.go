package provisioning

import (
	"context"

	"github.com/appforge/appforge/internal/config"
)

// Context wraps the dependencies and settings shared by all steps in one
// provisioning run. State never leaks between runs: each run builds its
// own Context and its own step list.
type Context struct {
	context.Context
	Config   *config.Config
	Observer Observer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, observer Observer) *Context {
	if observer == nil {
		observer = NewConsoleObserver()
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Observer: observer,
	}
}
