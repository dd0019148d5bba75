// Package actions implements two-phase confirmation of destructive or
// committing console actions.
//
// A caller first Requests an action and gets a Token back. Nothing happens
// until the token is either Confirmed, which runs the action, or Cancelled.
// Either way the token is spent.
package actions

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrUnknownToken = errors.New("unknown confirmation token")

type Kind string

const (
	KindSave    Kind = "save"
	KindDiscard Kind = "discard"
	KindDelete  Kind = "delete"
)

type Token string

// Pending describes a requested action that is waiting for an answer.
type Pending struct {
	Token  Token
	Kind   Kind
	Target string
}

type pendingAction struct {
	Pending
	apply func(context.Context) error
}

type Confirmer struct {
	mu      sync.Mutex
	pending map[Token]pendingAction
	order   []Token
}

func NewConfirmer() *Confirmer {
	return &Confirmer{pending: make(map[Token]pendingAction)}
}

// Request registers apply under a fresh token. target is a human readable
// description such as "user #3".
func (c *Confirmer) Request(kind Kind, target string, apply func(context.Context) error) Token {
	tok := Token(uuid.NewString())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[tok] = pendingAction{
		Pending: Pending{Token: tok, Kind: kind, Target: target},
		apply:   apply,
	}
	c.order = append(c.order, tok)
	return tok
}

// Confirm spends the token and runs its action. The action's error is
// returned as is.
func (c *Confirmer) Confirm(ctx context.Context, tok Token) error {
	act, err := c.take(tok)
	if err != nil {
		return err
	}
	if act.apply == nil {
		return nil
	}
	return act.apply(ctx)
}

// Cancel spends the token without running its action.
func (c *Confirmer) Cancel(tok Token) error {
	_, err := c.take(tok)
	return err
}

// lookup returns the pending action for tok.
func (c *Confirmer) lookup(tok Token) (Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	act, ok := c.pending[tok]
	return act.Pending, ok
}

// Pending lists the unanswered actions in request order.
func (c *Confirmer) Pending() []Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Pending, 0, len(c.order))
	for _, tok := range c.order {
		out = append(out, c.pending[tok].Pending)
	}
	return out
}

func (c *Confirmer) take(tok Token) (pendingAction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	act, ok := c.pending[tok]
	if !ok {
		return pendingAction{}, ErrUnknownToken
	}
	delete(c.pending, tok)
	for i, t := range c.order {
		if t == tok {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return act, nil
}
