package modkit

// Option overrides a module's build defaults
type Option func(*buildCfg)

type buildCfg struct {
	name   string
	prefix string
}

// WithName sets the module name used in logs
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix sets the route prefix the module mounts under
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}
