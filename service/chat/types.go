package chat

// Channel is the live push handle for one user's realtime connection.
// Implementations must tolerate Send after Close (return an error, never
// panic): the relay can race against teardown.
type Channel interface {
	Send(f *Frame) error
	Close() error
}

// Handler processes one inbound frame type.
type Handler interface {
	Type() string
	Handle(ctx *Context, f *Frame, c *Conn) error
}

type Context struct {
	S *Server
}
