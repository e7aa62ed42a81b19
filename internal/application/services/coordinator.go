package services

import (
	"context"

	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/ports"
)

// Effect is one write applied inside a coordinated mutation: either the
// primary entity write or a derived write such as a notification batch or an
// event-log append.
type Effect func(ctx context.Context, repos ports.Repositories) error

// MutationCoordinator commits a primary mutation together with its derived
// effects as one unit. If any effect fails the primary write is rolled back;
// a mutation is never observable without its side effects.
//
// All mutations in this package go through Execute. Multi-step writes
// outside it would lose the all-or-nothing guarantee.
type MutationCoordinator struct {
	uow    ports.UnitOfWork
	logger *logger.Logger
}

// NewMutationCoordinator creates a new mutation coordinator
func NewMutationCoordinator(uow ports.UnitOfWork, logger *logger.Logger) *MutationCoordinator {
	return &MutationCoordinator{
		uow:    uow,
		logger: logger,
	}
}

// Execute runs the primary effect followed by each derived effect in program
// order, all inside one transaction.
func (c *MutationCoordinator) Execute(ctx context.Context, primary Effect, effects ...Effect) error {
	err := c.uow.Atomic(ctx, func(repos ports.Repositories) error {
		if err := primary(ctx, repos); err != nil {
			return err
		}

		for _, effect := range effects {
			if effect == nil {
				continue
			}
			if err := effect(ctx, repos); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		c.logger.Debugw("Mutation rolled back", "error", err)
	}

	return err
}
