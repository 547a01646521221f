// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package abi

import (
	"crypto/sha512"
	"encoding/hex"
	"sort"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/record"
)

// SelectorSize - bytes of digest identifying a method
const SelectorSize = 4

// Selector - method identifier
type Selector [SelectorSize]byte

// SelectorOf - selector of a method signature
func SelectorOf(signature string) Selector {
	digest := sha512.Sum512_256([]byte(signature))
	s := Selector{}
	copy(s[:], digest[:SelectorSize])
	return s
}

// String - hex form
func (s Selector) String() string {
	return hex.EncodeToString(s[:])
}

type decoder func(r *reader) ledger.Operation

type method struct {
	signature string
	decode    decoder
}

var methods = []method{
	{"create(uint64,address,uint64,uint64,uint64,uint64,uint64,uint64)void", func(r *reader) ledger.Operation {
		return ledger.Create{
			TokenAssetID: r.uint64(),
			Application:  r.address(),
			Parameters: ledger.Parameters{
				FeeBps:       r.uint64(),
				AlgoRate:     r.uint64(),
				FpowRate:     r.uint64(),
				SupplyCap:    r.uint64(),
				YieldRateBps: r.uint64(),
				BuybackBps:   r.uint64(),
			},
		}
	}},
	{"automate(uint64,uint64,uint64,uint64,uint8,uint64)void", func(r *reader) ledger.Operation {
		return ledger.Automate{
			Amount:        r.uint64(),
			DepositAmount: r.uint64(),
			Fee:           r.uint64(),
			Mask:          r.uint64(),
			Strategy:      record.Strategy(r.uint8()),
			Reload:        r.uint64(),
		}
	}},
	{"execute(byte[32])void", func(r *reader) ledger.Operation {
		return ledger.Execute{Mask: record.Bitmap(r.bytes32())}
	}},
	{"checkpoint()void", func(r *reader) ledger.Operation {
		return ledger.Checkpoint{}
	}},
	{"claim_algo()void", func(r *reader) ledger.Operation {
		return ledger.ClaimAlgo{}
	}},
	{"claim_fpow()void", func(r *reader) ledger.Operation {
		return ledger.ClaimFpow{}
	}},
	{"close(uint64)void", func(r *reader) ledger.Operation {
		return ledger.Close{RoundID: r.uint64()}
	}},
	{"deploy(uint64,uint32)void", func(r *reader) ledger.Operation {
		return ledger.Deploy{
			Amount: r.uint64(),
			Mask:   record.BitmapFromUint32(r.uint32()),
		}
	}},
	{"deploy(uint64,byte[32])void", func(r *reader) ledger.Operation {
		return ledger.Deploy{
			Amount: r.uint64(),
			Mask:   record.Bitmap(r.bytes32()),
		}
	}},
	{"log(string)void", func(r *reader) ledger.Operation {
		return ledger.Log{Message: r.string()}
	}},
	{"reset()void", func(r *reader) ledger.Operation {
		return ledger.Reset{}
	}},
	{"reload_algo()void", func(r *reader) ledger.Operation {
		return ledger.ReloadAlgo{}
	}},
	{"deposit(uint64)void", func(r *reader) ledger.Operation {
		return ledger.Deposit{Amount: r.uint64()}
	}},
	{"withdraw(uint64)void", func(r *reader) ledger.Operation {
		return ledger.Withdraw{Amount: r.uint64()}
	}},
	{"claim_yield(uint64)void", func(r *reader) ledger.Operation {
		return ledger.ClaimYield{Amount: r.uint64()}
	}},
	{"compound_yield()void", func(r *reader) ledger.Operation {
		return ledger.CompoundYield{}
	}},
	{"buyback()void", func(r *reader) ledger.Operation {
		return ledger.Buyback{}
	}},
	{"bury(uint64)void", func(r *reader) ledger.Operation {
		return ledger.Bury{Amount: r.uint64()}
	}},
	{"wrap(uint64)void", func(r *reader) ledger.Operation {
		return ledger.Wrap{Amount: r.uint64()}
	}},
	{"set_admin(address)void", func(r *reader) ledger.Operation {
		return ledger.SetAdmin{Admin: r.address()}
	}},
	{"new_var(uint64,byte[32],uint64)void", func(r *reader) ledger.Operation {
		return ledger.NewVar{
			ID:          r.uint64(),
			Commitment:  record.Commitment(r.bytes32()),
			SampleCount: r.uint64(),
		}
	}},
	{"liq()void", func(r *reader) ledger.Operation {
		return ledger.Liq{}
	}},
}

// lookup tables
var (
	bySelector  = make(map[Selector]*method)
	bySignature = make(map[string]*method)
)

func init() {
	for i := range methods {
		m := &methods[i]
		s := SelectorOf(m.signature)
		if _, ok := bySelector[s]; ok {
			panic("abi: duplicate selector for: " + m.signature)
		}
		bySelector[s] = m
		bySignature[m.signature] = m
	}
}

// Decode - build the operation for a selector, or a full signature,
// and its arguments
func Decode(selector []byte, args [][]byte) (ledger.Operation, error) {
	m, ok := (*method)(nil), false
	if SelectorSize == len(selector) {
		s := Selector{}
		copy(s[:], selector)
		m, ok = bySelector[s]
	}
	if !ok {
		m, ok = bySignature[string(selector)]
	}
	if !ok {
		return nil, fault.ErrUnknownSelector
	}

	r := &reader{args: args}
	op := m.decode(r)
	if err := r.finish(); nil != err {
		return nil, err
	}
	return op, nil
}

// Method - a signature with its selector
type Method struct {
	Signature string   `json:"signature"`
	Selector  Selector `json:"-"`
}

// Methods - every known method in signature order
func Methods() []Method {
	list := make([]Method, 0, len(methods))
	for _, m := range methods {
		list = append(list, Method{
			Signature: m.signature,
			Selector:  SelectorOf(m.signature),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Signature < list[j].Signature
	})
	return list
}
