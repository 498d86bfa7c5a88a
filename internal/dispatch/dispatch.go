// Package dispatch routes parsed inbound messages to their handlers. The
// table is built once at startup; dispatching happens on the simulation
// goroutine only, so handlers mutate the world without locking.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Oipo/IdleBossHunter/internal/auth"
	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/systems"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// ErrMalformed marks a frame whose payload did not deserialize. Malformed
// frames are dropped without a reply; everything else gets an error
// response.
var ErrMalformed = errors.New("malformed message")

// Sender delivers replies and broadcasts generated by handlers.
type Sender interface {
	Send(to session.ConnectionID, msg wire.Message)
	Broadcast(msg wire.Message)
}

// Publisher mirrors selected events onto the messaging bridge.
type Publisher interface {
	PublishChat(sender, content string) error
	PublishMotd(motd string) error
}

// Context bundles everything handlers touch. All fields except Sessions and
// Out are owned by the simulation goroutine.
type Context struct {
	World      *ecs.World
	Provider   repo.Provider
	Out        Sender
	Sessions   *session.Registry
	Stats      *ecs.StatRegistry
	Encounters *systems.BattleSystem
	Hasher     auth.Hasher
	Bridge     Publisher

	// Motd is the current message of the day. Read on login, replaced by
	// the set-motd handler.
	Motd string
}

// Error is a handler failure that becomes a wire error response to the
// originating connection.
type Error struct {
	Code       string
	Msg        string
	Pretty     string
	ClearLogin bool
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf builds a handler error with a machine-readable code.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// HandlerFunc processes one inbound message inside one unit of work. A nil
// return commits the unit; any error rolls it back.
type HandlerFunc func(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error

// Table maps discriminators to handlers.
type Table struct {
	handlers  map[uint64]HandlerFunc
	onHandled func(result string)
}

// TableOpt configures a Table.
type TableOpt func(*Table)

// WithDispatchCounter registers a callback invoked per dispatched message
// with "ok", "error", or "dropped".
func WithDispatchCounter(fn func(result string)) TableOpt {
	return func(t *Table) {
		t.onHandled = fn
	}
}

// NewTable creates an empty dispatch table.
func NewTable(opts ...TableOpt) *Table {
	t := &Table{handlers: make(map[uint64]HandlerFunc)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewDefaultTable creates a table with every operation registered.
func NewDefaultTable(opts ...TableOpt) *Table {
	t := NewTable(opts...)

	for disc, h := range map[uint64]HandlerFunc{
		wire.TypeLoginRequest:           handleLogin,
		wire.TypeRegisterRequest:        handleRegister,
		wire.TypeCreateCharacterRequest: handleCreateCharacter,
		wire.TypePlayCharacterRequest:   handlePlayCharacter,
		wire.TypeDeleteCharacterRequest: handleDeleteCharacter,
		wire.TypeChatRequest:            handleChat,
		wire.TypeSetMotdRequest:         handleSetMotd,
		wire.TypeCompanyListingRequest:  handleCompanyListing,
		wire.TypeStartGatheringRequest:  handleStartGathering,
		wire.TypeStopGatheringRequest:   handleStopGathering,
	} {
		if err := t.Register(disc, h); err != nil {
			// The map above is static; a duplicate is a programming error.
			panic(err)
		}
	}

	return t
}

// Register binds a handler to a discriminator. Duplicate registration is an
// error.
func (t *Table) Register(disc uint64, h HandlerFunc) error {
	if _, ok := t.handlers[disc]; ok {
		return fmt.Errorf("discriminator %d (%s) already registered", disc, wire.Name(disc))
	}
	t.handlers[disc] = h
	return nil
}

// Dispatch runs the handler for one inbound frame inside a fresh unit of
// work. Every failure mode is contained: unknown types and malformed
// payloads are dropped with a warning, handler errors and panics roll the
// unit back and answer the sender with an error response. Dispatch itself
// never fails the drain loop.
func (t *Table) Dispatch(ctx context.Context, c *Context, s *session.Session, d *wire.Document) {
	h, ok := t.handlers[d.Type]
	if !ok {
		slog.WarnContext(ctx, "no handler for message",
			"type", wire.Name(d.Type),
			"connection", s.ID)
		t.count("dropped")
		return
	}

	u, err := c.Provider.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "beginning unit of work", "error", err)
		c.Out.Send(s.ID, internalError())
		t.count("error")
		return
	}

	err = t.invoke(ctx, c, u, s, d, h)
	if err == nil {
		if err := u.Commit(); err != nil {
			slog.ErrorContext(ctx, "committing unit of work", "error", err)
			c.Out.Send(s.ID, internalError())
			t.count("error")
			return
		}
		t.count("ok")
		return
	}

	if rbErr := u.Rollback(); rbErr != nil {
		slog.WarnContext(ctx, "rolling back unit of work", "error", rbErr)
	}

	if errors.Is(err, ErrMalformed) {
		slog.WarnContext(ctx, "dropping malformed message",
			"type", wire.Name(d.Type),
			"connection", s.ID)
		t.count("dropped")
		return
	}

	var he *Error
	if errors.As(err, &he) {
		c.Out.Send(s.ID, &wire.ErrorResponse{
			Code:           he.Code,
			Error:          he.Msg,
			Pretty:         he.Pretty,
			ClearLoginData: he.ClearLogin,
		})
	} else {
		slog.ErrorContext(ctx, "handler failed",
			"type", wire.Name(d.Type),
			"connection", s.ID,
			"error", err)
		c.Out.Send(s.ID, internalError())
	}
	t.count("error")
}

// invoke shields the drain loop from handler panics.
func (t *Table) invoke(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document, h HandlerFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "handler panicked",
				"type", wire.Name(d.Type),
				"connection", s.ID,
				"panic", r)
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, c, u, s, d)
}

func (t *Table) count(result string) {
	if t.onHandled != nil {
		t.onHandled(result)
	}
}

func internalError() *wire.ErrorResponse {
	return &wire.ErrorResponse{
		Code:  "internal_error",
		Error: "something went wrong, please try again",
	}
}
