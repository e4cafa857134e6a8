package core

import (
	"errors"
	"sync"
)

// CommandHandler decodes its own arguments from the front of *args.
type CommandHandler func(args *[]byte) error

// Command is one entry of the message table. Messages without a handler are
// responses, sent from the firmware to the host.
type Command struct {
	ID      uint16
	Name    string
	Format  string // e.g. "instance=%c interval_us=%u"
	Handler CommandHandler
}

// Signature is the name and format as they appear in the data dictionary.
func (c *Command) Signature() string {
	if c.Format == "" {
		return c.Name
	}
	return c.Name + " " + c.Format
}

// IsResponse reports whether the message flows from firmware to host.
func (c *Command) IsResponse() bool {
	return c.Handler == nil
}

var errUnknownCommand = errors.New("unknown command")

// CommandRegistry assigns IDs in registration order. The first two
// registrations must be identify_response and identify, which the host
// expects at IDs 0 and 1 before it has read the dictionary.
type CommandRegistry struct {
	mu     sync.RWMutex
	byID   []*Command
	byName map[string]*Command
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{byName: make(map[string]*Command)}
}

var globalRegistry = NewCommandRegistry()

// Register adds a message and returns its ID. Registering a name twice
// returns the existing ID.
func (r *CommandRegistry) Register(name, format string, handler CommandHandler) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.byName[name]; ok {
		return c.ID
	}
	c := &Command{
		ID:      uint16(len(r.byID)),
		Name:    name,
		Format:  format,
		Handler: handler,
	}
	r.byID = append(r.byID, c)
	r.byName[name] = c
	return c.ID
}

// Lookup finds a message by ID.
func (r *CommandRegistry) Lookup(id uint16) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.byID) {
		return nil, false
	}
	return r.byID[id], true
}

// LookupName finds a message by name.
func (r *CommandRegistry) LookupName(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns the messages in ID order.
func (r *CommandRegistry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Command, len(r.byID))
	copy(out, r.byID)
	return out
}

func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Dispatch runs the handler of command id. It matches protocol.Handler.
func (r *CommandRegistry) Dispatch(id uint16, args *[]byte) error {
	c, ok := r.Lookup(id)
	if !ok || c.Handler == nil {
		return errUnknownCommand
	}
	return c.Handler(args)
}

// RegisterCommand adds a host to firmware command to the global registry.
func RegisterCommand(name, format string, handler CommandHandler) uint16 {
	return globalRegistry.Register(name, format, handler)
}

// RegisterResponse adds a firmware to host message to the global registry.
func RegisterResponse(name, format string) uint16 {
	return globalRegistry.Register(name, format, nil)
}

// DispatchCommand runs a command from the global registry.
func DispatchCommand(id uint16, args *[]byte) error {
	return globalRegistry.Dispatch(id, args)
}

func GetGlobalRegistry() *CommandRegistry {
	return globalRegistry
}
