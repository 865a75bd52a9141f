// internal/conversation/navigator.go
package conversation

import "context"

// Destination is a view outside the conversation the assistant can send the
// user to.
type Destination string

const (
	DestinationCreditScore Destination = "dashboard/credit-score"
	DestinationStatement   Destination = "dashboard/statement"
	DestinationLoanDetails Destination = "dashboard/loans"
)

type Navigator interface {
	Navigate(ctx context.Context, to Destination) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, to Destination) error

func (f NavigatorFunc) Navigate(ctx context.Context, to Destination) error { return f(ctx, to) }

type nopNavigator struct{}

func (nopNavigator) Navigate(context.Context, Destination) error { return nil }
