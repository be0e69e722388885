// Package di wires together wst's long-lived dependencies: the cascade and
// the HTTP server configuration built from it.
package di

import (
	"github.com/Tehiaohiao/wst/pkg/api"
	"github.com/Tehiaohiao/wst/pkg/config"
	"github.com/Tehiaohiao/wst/pkg/workingset"
)

// Container holds the dependencies shared by wst's binaries.
type Container struct {
	cfg  *config.Config
	tree *workingset.WorkingSetTree[string]
}

// NewContainer builds a Container from cfg, constructing a cascade sized
// per cfg.Cascade.
func NewContainer(cfg *config.Config) (*Container, error) {
	tree, err := workingset.New[string](
		cfg.Cascade.MinDegree,
		cfg.Cascade.ScaleFactor,
		cfg.Cascade.BaseHeight,
		cfg.Cascade.NumTrees,
	)
	if err != nil {
		return nil, err
	}
	return &Container{cfg: cfg, tree: tree}, nil
}

// Tree returns the shared working-set tree.
func (c *Container) Tree() *workingset.WorkingSetTree[string] { return c.tree }

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config { return c.cfg }

// ServerConfig derives the HTTP server's configuration from the
// container's loaded config.
func (c *Container) ServerConfig() api.ServerConfig {
	return api.ServerConfig{Port: c.cfg.Port, Bind: c.cfg.Bind}
}
