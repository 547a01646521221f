// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package application_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/rpc/application"
	"github.com/bitmark-inc/fpowd/rpc/fixtures"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func setup(t *testing.T) (*application.Application, *storage.Store) {
	engine, _, store, err := fixtures.Engine()
	require.Nil(t, err, "engine")
	return application.New(logger.New(fixtures.LogCategory), engine), store
}

func TestApplyDeploy(t *testing.T) {
	a, store := setup(t)
	defer store.Close()

	arguments := application.ApplyArguments{
		Method:    "b0d0b733",
		Arguments: []string{"00000000000f4240", "00000005"},
		Sender:    fixtures.Alice,
		Group: settlement.Group{
			{Kind: settlement.Payment, Sender: fixtures.Alice, Receiver: fixtures.Application, Amount: 1000000},
			{Kind: settlement.ApplicationCall, Sender: fixtures.Alice, Receiver: fixtures.Application},
		},
		GroupIndex: 1,
	}
	reply := ledger.Receipt{}
	err := a.Apply(&arguments, &reply)
	require.Nil(t, err, "apply")
	assert.Equal(t, "deploy", reply.Operation, "operation")

	m, err := a.Engine.Miner(fixtures.Alice)
	require.Nil(t, err, "miner")
	assert.Equal(t, uint64(1000000), m.Deployed, "deployed")
	assert.Equal(t, 2, m.Owned.Count(), "squares")
}

func TestApplyBySignature(t *testing.T) {
	a, store := setup(t)
	defer store.Close()

	arguments := application.ApplyArguments{
		Method:    "log(string)void",
		Arguments: []string{"00026869"},
		Sender:    fixtures.Alice,
	}
	reply := ledger.Receipt{}
	err := a.Apply(&arguments, &reply)
	require.Nil(t, err, "apply")
	assert.Equal(t, "log", reply.Operation, "operation")
	assert.Equal(t, []string{"hi"}, reply.Logs, "logs")
}

func TestApplyErrors(t *testing.T) {
	a, store := setup(t)
	defer store.Close()

	reply := ledger.Receipt{}

	err := a.Apply(&application.ApplyArguments{Method: "ffffffff", Sender: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrUnknownSelector, err, "unknown selector")

	err = a.Apply(&application.ApplyArguments{Method: "withdraw(uint64)void", Arguments: []string{"zz"}, Sender: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrInvalidArgumentLength, err, "bad hex")

	err = a.Apply(&application.ApplyArguments{Method: "withdraw(uint64)void", Sender: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing argument")

	err = a.Apply(&application.ApplyArguments{Sender: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "no method on a plain call")

	err = a.Apply(&application.ApplyArguments{Method: "reset()void", Sender: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrUnauthorised, err, "reset by non-admin")
}

func TestApplyLifecycle(t *testing.T) {
	a, store := setup(t)
	defer store.Close()

	reply := ledger.Receipt{}
	err := a.Apply(&application.ApplyArguments{Sender: fixtures.Alice, OnCompletion: ledger.OptIn}, &reply)
	assert.Nil(t, err, "opt in")

	err = a.Apply(&application.ApplyArguments{Sender: fixtures.Alice, OnCompletion: ledger.DeleteApplication}, &reply)
	assert.Equal(t, fault.ErrUnauthorised, err, "delete by non-admin")
}

func TestMethods(t *testing.T) {
	a, store := setup(t)
	defer store.Close()

	reply := application.MethodsReply{}
	err := a.Methods(&application.MethodsArguments{}, &reply)
	require.Nil(t, err, "methods")
	require.Equal(t, 22, len(reply.Methods), "method count")

	found := false
	for _, m := range reply.Methods {
		if "deploy(uint64,uint32)void" == m.Signature {
			assert.Equal(t, "b0d0b733", m.Selector, "selector")
			found = true
		}
	}
	assert.True(t, found, "deploy listed")
}
