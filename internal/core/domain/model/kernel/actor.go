package kernel

import (
	"strings"

	"wms/internal/pkg/errs"
	"wms/internal/pkg/guard"

	"github.com/google/uuid"
)

// ErrActorIsNotConstructed is returned when a zero-value Actor is used.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// SystemActor is recorded on writes made by scheduled jobs.
var SystemActor = Actor{
	id:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("wms.system")),
	name:  "system",
	guard: guard.NewConstructorGuard(),
}

// Actor is the opaque identity attributed on movements, cartons and status
// events. The engine never interprets it beyond storing it.
type Actor struct {
	id    uuid.UUID
	name  string
	guard guard.ConstructorGuard
}

func NewActor(id uuid.UUID, name string) (Actor, error) {
	if id == uuid.Nil {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	return Actor{
		id:    id,
		name:  strings.TrimSpace(name),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ActorFromString parses the identifier an outer layer passed in, typically a
// request header.
func ActorFromString(id, name string) (Actor, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("actor id", err)
	}
	return NewActor(parsed, name)
}

// RestoreActor rebuilds an actor read from storage; a nil id yields the zero Actor.
func RestoreActor(id uuid.UUID, name string) Actor {
	if id == uuid.Nil {
		return Actor{}
	}
	return Actor{id: id, name: name, guard: guard.NewConstructorGuard()}
}

func (a Actor) ID() uuid.UUID { return a.id }
func (a Actor) Name() string  { return a.name }

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
