package protocol

// HandlerFunc processes one parsed command. The session is passed as an
// opaque value so this package does not depend on the transport layer;
// handlers cast it back to the concrete session type.
type HandlerFunc func(sess any, cmd Command)

// Registry maps verbs to handlers.
type Registry struct {
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a verb to fn, replacing any previous binding.
func (r *Registry) Register(verb string, fn HandlerFunc) {
	r.handlers[verb] = fn
}

// Dispatch routes cmd to its handler. Reports whether a handler was
// registered for the verb.
func (r *Registry) Dispatch(sess any, cmd Command) bool {
	fn, ok := r.handlers[cmd.Verb]
	if !ok {
		return false
	}
	fn(sess, cmd)
	return true
}
