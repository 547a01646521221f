// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package application

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/abi"
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/rpc/ratelimit"
	"github.com/bitmark-inc/fpowd/settlement"
)

const (
	rateLimitApplication = 200
	rateBurstApplication = 100

	// an atomic group never holds more entries
	maximumGroupSize = 16

	applyTimeout = 5 * time.Second
)

// Application - type for RPC calls
type Application struct {
	Log     *logger.L
	Limiter *ratelimit.Limiter
	Engine  *ledger.Engine
}

// New - create the application call service
func New(log *logger.L, engine *ledger.Engine) *Application {
	return &Application{
		Log:     log,
		Limiter: ratelimit.New(rateLimitApplication, rateBurstApplication, maximumGroupSize),
		Engine:  engine,
	}
}

// ---

// ApplyArguments - one application call and the group submitted with it
//
// Method is the hex selector or the full method signature, Arguments
// are hex encoded; an empty Method is only valid for lifecycle actions
type ApplyArguments struct {
	Method       string              `json:"method"`
	Arguments    []string            `json:"arguments"`
	Sender       account.Address     `json:"sender"`
	Accounts     []account.Address   `json:"accounts"`
	OnCompletion ledger.OnCompletion `json:"onCompletion"`
	Group        settlement.Group    `json:"group"`
	GroupIndex   int                 `json:"groupIndex"`
	Timestamp    uint64              `json:"timestamp,string"`
}

// Apply - execute one call
func (application *Application) Apply(arguments *ApplyArguments, reply *ledger.Receipt) error {

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	if err := application.Limiter.LimitN(len(arguments.Group) + 1); nil != err {
		return err
	}

	call := &ledger.Call{
		Sender:       arguments.Sender,
		Accounts:     arguments.Accounts,
		OnCompletion: arguments.OnCompletion,
		Group:        arguments.Group,
		GroupIndex:   arguments.GroupIndex,
		Timestamp:    arguments.Timestamp,
	}
	if 0 == call.Timestamp {
		call.Timestamp = uint64(time.Now().Unix())
	}

	if "" != arguments.Method {
		op, err := decode(arguments.Method, arguments.Arguments)
		if nil != err {
			application.Log.Debugf("decode: %q  error: %s", arguments.Method, err)
			return err
		}
		call.Operation = op
	}

	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	receipt, err := application.Engine.Apply(ctx, call)
	if nil != err {
		return err
	}
	*reply = *receipt
	return nil
}

func decode(method string, arguments []string) (ledger.Operation, error) {
	selector := []byte(method)
	if 2*abi.SelectorSize == len(method) {
		if s, err := hex.DecodeString(method); nil == err {
			selector = s
		}
	}

	args := make([][]byte, len(arguments))
	for i, a := range arguments {
		b, err := hex.DecodeString(a)
		if nil != err {
			return nil, fault.ErrInvalidArgumentLength
		}
		args[i] = b
	}
	return abi.Decode(selector, args)
}

// ---

// MethodsArguments - empty arguments for methods request
type MethodsArguments struct{}

// MethodEntry - a signature with its selector
type MethodEntry struct {
	Signature string `json:"signature"`
	Selector  string `json:"selector"`
}

// MethodsReply - every method the application accepts
type MethodsReply struct {
	Methods []MethodEntry `json:"methods"`
}

// Methods - list the method table
func (application *Application) Methods(_ *MethodsArguments, reply *MethodsReply) error {

	if err := application.Limiter.Limit(); nil != err {
		return err
	}

	for _, m := range abi.Methods() {
		reply.Methods = append(reply.Methods, MethodEntry{
			Signature: m.Signature,
			Selector:  m.Selector.String(),
		})
	}
	return nil
}
