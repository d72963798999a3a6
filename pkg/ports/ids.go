package ports

// IDGenerator produces unique keys for new states and transitions.
type IDGenerator interface {
	GenerateID() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) GenerateID() string { return f() }
