// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package abi_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fpowd/abi"
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/record"
)

func u64(n uint64) []byte {
	return record.PutUint64(n)
}

func selector(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.Nil(t, err, "hex")
	return b
}

func TestSelectorOf(t *testing.T) {
	items := []struct {
		signature string
		selector  string
	}{
		{"deploy(uint64,uint32)void", "b0d0b733"},
		{"reset()void", "19c02cb3"},
		{"claim_algo()void", "ceee6c1a"},
		{"create(uint64,address,uint64,uint64,uint64,uint64,uint64,uint64)void", "52513f8b"},
	}
	for _, item := range items {
		assert.Equal(t, item.selector, abi.SelectorOf(item.signature).String(), item.signature)
	}
}

func TestDecodeDeploy(t *testing.T) {
	op, err := abi.Decode(selector(t, "b0d0b733"), [][]byte{u64(1000), {0x00, 0x00, 0x00, 0x05}})
	require.Nil(t, err, "decode")
	assert.Equal(t, ledger.Deploy{Amount: 1000, Mask: record.BitmapFromUint32(5)}, op, "deploy")

	mask := make([]byte, 32)
	mask[31] = 0x80
	op, err = abi.Decode([]byte("deploy(uint64,byte[32])void"), [][]byte{u64(7), mask})
	require.Nil(t, err, "decode")
	deploy, ok := op.(ledger.Deploy)
	require.True(t, ok, "type")
	assert.True(t, deploy.Mask.IsSet(255), "square 255")
	assert.Equal(t, 1, deploy.Mask.Count(), "one square")
}

func TestDecodeExecute(t *testing.T) {
	mask := make([]byte, 32)
	mask[0] = 0x03
	op, err := abi.Decode([]byte("execute(byte[32])void"), [][]byte{mask})
	require.Nil(t, err, "decode")
	execute, ok := op.(ledger.Execute)
	require.True(t, ok, "type")
	assert.Equal(t, 2, execute.Mask.Count(), "squares")
	assert.Equal(t, "execute", op.Name(), "name")

	_, err = abi.Decode([]byte("execute(byte[32])void"), nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing mask")
}

func TestDecodeArguments(t *testing.T) {
	admin := account.Address{0xad}
	commitment := make([]byte, 32)
	commitment[0] = 0xcc

	items := []struct {
		signature string
		args      [][]byte
		op        ledger.Operation
	}{
		{"reset()void", nil, ledger.Reset{}},
		{"close(uint64)void", [][]byte{u64(3)}, ledger.Close{RoundID: 3}},
		{"withdraw(uint64)void", [][]byte{u64(1500)}, ledger.Withdraw{Amount: 1500}},
		{"set_admin(address)void", [][]byte{admin.Bytes()}, ledger.SetAdmin{Admin: admin}},
		{"log(string)void", [][]byte{{0x00, 0x02, 'h', 'i'}}, ledger.Log{Message: "hi"}},
		{
			"automate(uint64,uint64,uint64,uint64,uint8,uint64)void",
			[][]byte{u64(1), u64(2), u64(3), u64(4), {0x02}, u64(6)},
			ledger.Automate{Amount: 1, DepositAmount: 2, Fee: 3, Mask: 4, Strategy: record.StrategyDiscretionary, Reload: 6},
		},
		{
			"new_var(uint64,byte[32],uint64)void",
			[][]byte{u64(9), commitment, u64(16)},
			ledger.NewVar{ID: 9, Commitment: record.Commitment{0xcc}, SampleCount: 16},
		},
	}
	for _, item := range items {
		op, err := abi.Decode([]byte(item.signature), item.args)
		require.Nil(t, err, item.signature)
		assert.Equal(t, item.op, op, item.signature)

		s := abi.SelectorOf(item.signature)
		op, err = abi.Decode(s[:], item.args)
		require.Nil(t, err, item.signature)
		assert.Equal(t, item.op, op, item.signature)
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := abi.Decode([]byte{1, 2, 3, 4}, nil)
	assert.Equal(t, fault.ErrUnknownSelector, err, "unknown selector")

	_, err = abi.Decode([]byte("withdraw(uint64)void"), nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing argument")

	_, err = abi.Decode([]byte("withdraw(uint64)void"), [][]byte{{1, 2}})
	assert.Equal(t, fault.ErrInvalidArgumentLength, err, "short argument")

	_, err = abi.Decode([]byte("reset()void"), [][]byte{u64(1)})
	assert.Equal(t, fault.ErrInvalidArgumentLength, err, "extra argument")

	_, err = abi.Decode([]byte("log(string)void"), [][]byte{{0x00, 0x05, 'h', 'i'}})
	assert.Equal(t, fault.ErrInvalidArgumentLength, err, "bad string length")
}

func TestMethods(t *testing.T) {
	list := abi.Methods()
	assert.Equal(t, 22, len(list), "method count")
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].Signature < list[i].Signature, "sorted")
	}
}
