// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/messagebus"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
)

// message bus commands
const (
	BusLog     = "log"
	BusReceipt = "receipt"
)

// Engine - applies calls to the record store one at a time
type Engine struct {
	sync.Mutex

	log      *logger.L
	store    *storage.Store
	settler  settlement.Settler
	bus      *messagebus.Queue
	emission EmissionPolicy
	yield    YieldPolicy
	strategy TreasuryStrategy
}

// Option - engine setting
type Option func(*Engine)

// WithEmission - replace the mining reward policy
func WithEmission(policy EmissionPolicy) Option {
	return func(e *Engine) { e.emission = policy }
}

// WithYield - replace the staking yield policy
func WithYield(policy YieldPolicy) Option {
	return func(e *Engine) { e.yield = policy }
}

// WithTreasury - replace the buyback and liquidity strategy
func WithTreasury(strategy TreasuryStrategy) Option {
	return func(e *Engine) { e.strategy = strategy }
}

// WithBus - publish log events and receipts
func WithBus(bus *messagebus.Queue) Option {
	return func(e *Engine) { e.bus = bus }
}

// New - create an engine over an open store
func New(store *storage.Store, settler settlement.Settler, options ...Option) *Engine {
	e := &Engine{
		log:      logger.New("ledger"),
		store:    store,
		settler:  settler,
		emission: LinearEmission{},
		yield:    SimpleYield{},
		strategy: ReleaseToAdmin{},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Apply - execute one call atomically
//
// on any error nothing is written and no transfer is settled
func (e *Engine) Apply(ctx context.Context, call *Call) (*Receipt, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}
	if nil == call {
		return nil, fault.ErrMissingParameters
	}

	e.Lock()
	defer e.Unlock()

	trx, err := e.store.Begin()
	if nil != err {
		return nil, err
	}

	s := newState(trx, &e.store.Pool, call)
	name, err := e.execute(s)
	if nil == err {
		err = s.flush()
	}
	if nil == err && nil != s.config {
		s.batch.Round = s.config.RoundID
		err = e.settler.Settle(trx, &s.batch)
	}
	if nil != err {
		trx.Abort()
		e.log.Debugf("%s  from: %s  error: %s", name, call.Sender, err)
		return nil, err
	}
	if err := trx.Commit(); nil != err {
		e.log.Errorf("%s  commit error: %s", name, err)
		return nil, err
	}

	receipt := &Receipt{
		Operation: name,
		Transfers: s.batch.Transfers,
		Logs:      s.logs,
	}
	if nil != s.config {
		receipt.Round = s.config.RoundID
	}
	e.log.Infof("%s  from: %s  transfers: %d", name, call.Sender, len(receipt.Transfers))

	for _, message := range s.logs {
		e.publish(BusLog, message)
	}
	e.publish(BusReceipt, receipt)

	return receipt, nil
}

// Update - run other serialised work in a transaction of its own
func (e *Engine) Update(f func(trx storage.Transaction) error) error {
	e.Lock()
	defer e.Unlock()

	trx, err := e.store.Begin()
	if nil != err {
		return err
	}
	if err := f(trx); nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func (e *Engine) publish(command string, item interface{}) {
	if nil == e.bus {
		return
	}
	if !e.bus.Send("ledger", command, item) {
		e.log.Warnf("bus full, dropped: %s", command)
	}
}

// run the lifecycle action, then the operation; returns the name for the receipt
func (e *Engine) execute(s *state) (string, error) {
	call := s.call

	switch call.OnCompletion {
	case NoOp:
	case OptIn, CloseOut, ClearState:
		return call.OnCompletion.String(), nil
	case UpdateApplication, DeleteApplication:
		if err := s.load(); nil != err {
			return call.OnCompletion.String(), err
		}
		return call.OnCompletion.String(), s.requireAdmin()
	default:
		return call.OnCompletion.String(), fault.ErrInvalidOnCompletion
	}

	if nil == call.Operation {
		return "", fault.ErrMissingParameters
	}
	name := call.Operation.Name()

	if op, ok := call.Operation.(Create); ok {
		return name, e.create(s, op)
	}
	if err := s.load(); nil != err {
		return name, err
	}

	var err error
	switch op := call.Operation.(type) {
	case Automate:
		err = e.automate(s, op)
	case Execute:
		err = e.executeAutomation(s, op)
	case Checkpoint:
		err = e.checkpoint(s)
	case ClaimAlgo:
		err = e.claimAlgo(s)
	case ClaimFpow:
		err = e.claimFpow(s)
	case Close:
		err = e.close(s, op)
	case Deploy:
		err = e.deploy(s, op)
	case Log:
		err = e.logMessage(s, op)
	case Reset:
		err = e.reset(s)
	case ReloadAlgo:
		err = e.reloadAlgo(s)
	case Deposit:
		err = e.deposit(s, op)
	case Withdraw:
		err = e.withdraw(s, op)
	case ClaimYield:
		err = e.claimYield(s, op)
	case CompoundYield:
		err = e.compoundYield(s)
	case Buyback:
		err = e.buyback(s)
	case Bury:
		err = e.bury(s, op)
	case Wrap:
		err = e.wrap(s, op)
	case SetAdmin:
		err = e.setAdmin(s, op)
	case NewVar:
		err = e.newVar(s, op)
	case Liq:
		err = e.liq(s)
	default:
		err = fault.ErrUnknownSelector
	}
	return name, err
}

// create - initialise the singleton records with the caller as admin
func (e *Engine) create(s *state, op Create) error {
	if s.trx.Exists(s.pools.Config, singletonKey) {
		return fault.ErrAlreadyInitialised
	}
	if s.call.Sender.IsZero() {
		return fault.ErrInvalidAdmin
	}
	if op.Application.IsZero() {
		return fault.ErrInvalidAccount
	}

	p := op.Parameters
	if 0 == p.FeeBps {
		p.FeeBps = record.DefaultFeeBps
	}
	if 0 == p.SupplyCap {
		p.SupplyCap = record.MaxSupply
	}
	if p.FeeBps > record.DenominatorBps || p.BuybackBps > record.DenominatorBps {
		return fault.ErrInvalidAmount
	}

	config := &record.Config{
		Admin:        s.call.Sender,
		TokenAssetID: op.TokenAssetID,
		FeeBps:       p.FeeBps,
		AlgoRate:     p.AlgoRate,
		FpowRate:     p.FpowRate,
		SupplyCap:    p.SupplyCap,
		YieldRateBps: p.YieldRateBps,
		BuybackBps:   p.BuybackBps,
		CreatedAt:    s.call.Timestamp,
		Application:  op.Application,
	}

	if err := s.create(s.pools.Config, singletonKey, config.Pack()); nil != err {
		return err
	}
	treasury := &record.Treasury{}
	if err := s.create(s.pools.Treasury, singletonKey, treasury.Pack()); nil != err {
		return err
	}
	board := record.Bitmap{}
	if err := s.create(s.pools.Board, singletonKey, board[:]); nil != err {
		return err
	}

	s.config = config
	s.treasury = treasury
	s.board = &board
	e.log.Infof("created  admin: %s  application: %s  token: %d", config.Admin, config.Application, config.TokenAssetID)
	return nil
}

// log - observability only
func (e *Engine) logMessage(s *state, op Log) error {
	e.log.Infof("log from: %s  %q", s.call.Sender, op.Message)
	s.logs = append(s.logs, op.Message)
	return nil
}
