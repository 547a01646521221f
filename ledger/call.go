// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/settlement"
)

// OnCompletion - lifecycle action attached to a call
type OnCompletion uint8

// lifecycle actions
const (
	NoOp              OnCompletion = 0
	OptIn             OnCompletion = 1
	CloseOut          OnCompletion = 2
	ClearState        OnCompletion = 3
	UpdateApplication OnCompletion = 4
	DeleteApplication OnCompletion = 5
)

func (o OnCompletion) String() string {
	switch o {
	case NoOp:
		return "noop"
	case OptIn:
		return "optin"
	case CloseOut:
		return "closeout"
	case ClearState:
		return "clearstate"
	case UpdateApplication:
		return "update"
	case DeleteApplication:
		return "delete"
	default:
		return "unknown"
	}
}

// Call - one application call
//
// Accounts are the referenced accounts, the first is the target
// authority for operations acting on behalf of others; Group holds
// every entry submitted atomically with the call at GroupIndex
type Call struct {
	Sender       account.Address
	Accounts     []account.Address
	OnCompletion OnCompletion
	Group        settlement.Group
	GroupIndex   int
	Timestamp    uint64
	Operation    Operation
}

// Receipt - the outcome of a committed call
type Receipt struct {
	Operation string                `json:"operation"`
	Round     uint64                `json:"round,string"`
	Transfers []settlement.Transfer `json:"transfers"`
	Logs      []string              `json:"logs"`
}
