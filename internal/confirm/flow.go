/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package confirm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"banglapay-wallet-go/internal/api"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidTransition = errors.New("invalid confirmation flow transition")

type State int

const (
	Idle State = iota
	Composing
	PendingConfirmation
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case PendingConfirmation:
		return "pending-confirmation"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Draft holds the raw user input while composing.
type Draft struct {
	Amount     string
	Phone      string
	TargetId   string
	TargetName string
}

// Payload is a validated draft, ready to be confirmed.
type Payload struct {
	Action     ActionType
	Amount     decimal.Decimal
	Phone      string
	TargetId   string
	TargetName string
}

// AmountValue is the amount as the API expects it.
func (p Payload) AmountValue() float64 {
	return p.Amount.InexactFloat64()
}

func (p Payload) targetLabel() string {
	if p.TargetName != "" {
		return p.TargetName
	}
	return p.TargetId
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate turns a draft for action into a payload without touching the network.
func Validate(action ActionType, d Draft) (Payload, error) {
	if _, ok := catalog[action]; !ok {
		return Payload{}, &ValidationError{Field: "action", Message: fmt.Sprintf("unknown action %q", action)}
	}
	p := Payload{Action: action}

	if action.NeedsAmount() {
		amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
		if err != nil || !amount.IsPositive() {
			return Payload{}, &ValidationError{Field: "amount", Message: "Please enter a valid amount"}
		}
		p.Amount = amount
	}
	if action.NeedsPhone() {
		p.Phone = strings.TrimSpace(d.Phone)
		if p.Phone == "" {
			return Payload{}, &ValidationError{Field: "phone", Message: "Please enter recipient phone number"}
		}
	}
	if action.NeedsTarget() {
		p.TargetId = strings.TrimSpace(d.TargetId)
		p.TargetName = strings.TrimSpace(d.TargetName)
		if p.TargetId == "" {
			return Payload{}, &ValidationError{Field: "target", Message: "Please select a user"}
		}
	}
	return p, nil
}

// Submitter issues the mutation for a confirmed payload.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

type Notifier interface {
	Success(message string)
	Failure(message string)
}

// Flow is the two-step confirm-then-submit state machine. A mutation is only
// issued from PendingConfirmation, and exactly once per Confirm.
type Flow struct {
	mu        sync.Mutex
	state     State
	action    ActionType
	draft     Draft
	payload   Payload
	submitter Submitter
	notifier  Notifier
}

func NewFlow(submitter Submitter, notifier Notifier) *Flow {
	return &Flow{submitter: submitter, notifier: notifier}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Action() ActionType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.action
}

// Pending returns the payload awaiting confirmation.
func (f *Flow) Pending() (Payload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != PendingConfirmation {
		return Payload{}, false
	}
	return f.payload, true
}

// Begin starts composing action with an empty draft. Picking another action
// while composing discards the current draft.
func (f *Flow) Begin(action ActionType) error {
	if _, ok := catalog[action]; !ok {
		return fmt.Errorf("unknown action %q", action)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Idle && f.state != Composing {
		return fmt.Errorf("begin %s while %s: %w", action, f.state, ErrInvalidTransition)
	}
	f.state = Composing
	f.action = action
	f.draft = Draft{}
	f.payload = Payload{}
	return nil
}

func (f *Flow) Update(d Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Composing {
		return fmt.Errorf("edit draft while %s: %w", f.state, ErrInvalidTransition)
	}
	f.draft = d
	return nil
}

// Review validates the draft. On success the flow waits for confirmation; on
// a *ValidationError it stays in Composing.
func (f *Flow) Review() (Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Composing {
		return Payload{}, fmt.Errorf("review while %s: %w", f.state, ErrInvalidTransition)
	}

	p, err := Validate(f.action, f.draft)
	if err != nil {
		return Payload{}, err
	}
	f.payload = p
	f.state = PendingConfirmation
	return p, nil
}

// Cancel abandons the draft or the pending confirmation.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case Idle:
		return nil
	case Submitting:
		return fmt.Errorf("cancel while %s: %w", f.state, ErrInvalidTransition)
	}
	f.reset()
	return nil
}

// Confirm submits the pending payload once and returns to Idle whatever the
// outcome. The notifier receives the success message, or the server message
// (else the action's fallback) on failure.
func (f *Flow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state != PendingConfirmation {
		state := f.state
		f.mu.Unlock()
		return fmt.Errorf("confirm while %s: %w", state, ErrInvalidTransition)
	}
	f.state = Submitting
	p := f.payload
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, p)

	f.mu.Lock()
	f.reset()
	f.mu.Unlock()

	if err != nil {
		zap.L().Info("Confirmed action failed",
			zap.String("action", string(p.Action)),
			zap.Error(err))
		f.notifier.Failure(api.MessageOf(err, p.Action.Fallback()))
		return err
	}

	zap.L().Info("Confirmed action succeeded", zap.String("action", string(p.Action)))
	f.notifier.Success(p.Action.successMessage(p))
	return nil
}

func (f *Flow) reset() {
	f.state = Idle
	f.action = ""
	f.draft = Draft{}
	f.payload = Payload{}
}
