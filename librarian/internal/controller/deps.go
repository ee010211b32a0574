package controller

import (
	"context"

	"github.com/Astemirdum/librarian/librarian/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=deps.go -destination=mocks/mock.go

// Interaction is the operator on the other side of an action.
type Interaction interface {
	// Confirm asks a yes/no question; false cancels the action.
	Confirm(ctx context.Context, prompt string) bool
	Notify(ctx context.Context, n Notification)
}

// Refresher re-renders the views of the given kinds, all of them when none is given.
type Refresher interface {
	Refresh(ctx context.Context, kinds ...model.Kind) error
}

type Publisher interface {
	Publish(ctx context.Context, event model.HistoryEvent) error
}

type Validator interface {
	Validate(i interface{}) error
}
