package commands

import (
	"errors"

	"wms/internal/pkg/guard"
)

var ErrExpireLotsCommandIsNotConstructed = errors.New(
	"ExpireLotsCommand must be created via NewExpireLotsCommand constructor",
)

// ExpireLotsCommand sweeps available lots past their expiry date.
type ExpireLotsCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireLotsCommand() ExpireLotsCommand {
	return ExpireLotsCommand{guard: guard.NewConstructorGuard()}
}

func (c ExpireLotsCommand) Validate() error {
	return c.guard.Validate(ErrExpireLotsCommandIsNotConstructed)
}
