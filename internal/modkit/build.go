package modkit

// Built is the resolved result of a module's options
type Built struct {
	Name   string
	Prefix string
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{Name: c.name, Prefix: c.prefix}
}
