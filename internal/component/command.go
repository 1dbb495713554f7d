package component

// Command is a callable exposed through the host application's CLI,
// optionally nested in a named sub-command group. An empty group means the
// command is installed at the top level, if the host admits that.
type Command struct {
	base
	callable any
	group    string
}

// NewCommand creates a command component. An empty group requests a
// top-level command.
func NewCommand(name string, callable any, group string, opts ...Option) *Command {
	return &Command{
		base:     newBase(name, opts...),
		callable: callable,
		group:    group,
	}
}

// Callable returns the function invoked when the command runs. The core
// never calls it; only its placement constraints are checked.
func (c *Command) Callable() any {
	return c.callable
}

// Group returns the sub-command group name, or an empty string for a
// top-level command.
func (c *Command) Group() string {
	return c.group
}

// Category returns CategoryCommand.
func (c *Command) Category() Category {
	return CategoryCommand
}

// Clone returns an independent copy of the command component.
func (c *Command) Clone() Component {
	clone := *c
	return &clone
}

// Equal reports structural equality with another component.
func (c *Command) Equal(other Component) bool {
	o, ok := other.(*Command)
	return ok && c.base.equal(&o.base) && c.group == o.group && payloadEqual(c.callable, o.callable)
}
