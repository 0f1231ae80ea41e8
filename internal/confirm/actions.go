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
	"fmt"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/pipeline"
)

type ActionType string

const (
	ActionSend     ActionType = "send"
	ActionAdd      ActionType = "add"
	ActionWithdraw ActionType = "withdraw"
	ActionCashIn   ActionType = "cash-in"
	ActionCashOut  ActionType = "cash-out"
	ActionBlock    ActionType = "block"
	ActionUnblock  ActionType = "unblock"
	ActionSuspend  ActionType = "suspend"
	ActionActivate ActionType = "activate"
)

const (
	FallbackTransaction = "Transaction failed"
	FallbackAction      = "Action failed"
)

type actionSpec struct {
	title       string
	needsAmount bool
	needsPhone  bool
	needsTarget bool
	roles       []models.Role
	success     func(Payload) string
}

func (s actionSpec) fallback() string {
	if s.needsAmount {
		return FallbackTransaction
	}
	return FallbackAction
}

func toPhone(verb string) func(Payload) string {
	return func(p Payload) string {
		return fmt.Sprintf("%s %s %s", pipeline.FormatAmount(p.AmountValue()), verb, p.Phone)
	}
}

func ownWallet(verb string) func(Payload) string {
	return func(p Payload) string {
		return fmt.Sprintf("%s %s your wallet", pipeline.FormatAmount(p.AmountValue()), verb)
	}
}

func targetMessage(kind, verb string) func(Payload) string {
	return func(p Payload) string {
		return fmt.Sprintf("%s %s %s successfully", kind, p.targetLabel(), verb)
	}
}

var catalog = map[ActionType]actionSpec{
	ActionSend: {
		title: "Send Money", needsAmount: true, needsPhone: true,
		roles:   []models.Role{models.RoleUser},
		success: toPhone("sent to"),
	},
	ActionAdd: {
		title: "Add Money", needsAmount: true,
		roles:   []models.Role{models.RoleUser, models.RoleAgent},
		success: ownWallet("added to"),
	},
	ActionWithdraw: {
		title: "Withdraw", needsAmount: true,
		roles:   []models.Role{models.RoleUser, models.RoleAgent},
		success: ownWallet("withdrawn from"),
	},
	ActionCashIn: {
		title: "Cash In", needsAmount: true, needsPhone: true,
		roles:   []models.Role{models.RoleAgent},
		success: toPhone("added to"),
	},
	ActionCashOut: {
		title: "Cash Out", needsAmount: true, needsPhone: true,
		roles:   []models.Role{models.RoleAgent},
		success: toPhone("withdrawn from"),
	},
	ActionBlock: {
		title: "Block User", needsTarget: true,
		roles:   []models.Role{models.RoleAdmin},
		success: targetMessage("User", "blocked"),
	},
	ActionUnblock: {
		title: "Unblock User", needsTarget: true,
		roles:   []models.Role{models.RoleAdmin},
		success: targetMessage("User", "unblocked"),
	},
	ActionSuspend: {
		title: "Suspend Agent", needsTarget: true,
		roles:   []models.Role{models.RoleAdmin},
		success: targetMessage("Agent", "suspended"),
	},
	ActionActivate: {
		title: "Activate Agent", needsTarget: true,
		roles:   []models.Role{models.RoleAdmin},
		success: targetMessage("Agent", "activated"),
	},
}

func ParseAction(s string) (ActionType, error) {
	a := ActionType(s)
	if _, ok := catalog[a]; !ok {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

func (a ActionType) Title() string {
	return catalog[a].title
}

func (a ActionType) NeedsAmount() bool { return catalog[a].needsAmount }
func (a ActionType) NeedsPhone() bool  { return catalog[a].needsPhone }
func (a ActionType) NeedsTarget() bool { return catalog[a].needsTarget }

// AllowedFor reports whether a principal with role may start the action.
func (a ActionType) AllowedFor(role models.Role) bool {
	for _, r := range catalog[a].roles {
		if r == role {
			return true
		}
	}
	return false
}

// Fallback is the notification shown when a failed submission carries no
// server message.
func (a ActionType) Fallback() string {
	return catalog[a].fallback()
}

func (a ActionType) successMessage(p Payload) string {
	return catalog[a].success(p)
}

// Describe is the confirmation prompt for p.
func Describe(p Payload) string {
	spec := catalog[p.Action]
	switch {
	case spec.needsPhone:
		return fmt.Sprintf("%s: %s to %s", spec.title, pipeline.FormatAmount(p.AmountValue()), p.Phone)
	case spec.needsAmount:
		return fmt.Sprintf("%s: %s", spec.title, pipeline.FormatAmount(p.AmountValue()))
	default:
		return fmt.Sprintf("%s: %s", spec.title, p.targetLabel())
	}
}
