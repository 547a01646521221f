// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/counter"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/rpc/ratelimit"
	"github.com/bitmark-inc/fpowd/storage"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log         *logger.L
	Limiter     *ratelimit.Limiter
	Start       time.Time
	Version     string
	Engine      *ledger.Engine
	Store       *storage.Store
	connections *counter.Gauge
}

// New - create the node information service
func New(log *logger.L, engine *ledger.Engine, store *storage.Store, start time.Time, version string, connections *counter.Gauge) *Node {
	return &Node{
		Log:         log,
		Limiter:     ratelimit.New(rateLimitNode, rateBurstNode, 1),
		Start:       start,
		Version:     version,
		Engine:      engine,
		Store:       store,
		connections: connections,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version     string          `json:"version"`
	Uptime      string          `json:"uptime"`
	Initialised bool            `json:"initialised"`
	Round       uint64          `json:"round,string"`
	Occupied    int             `json:"occupied"`
	Connections ConnectionsInfo `json:"connections"`
	Storage     StorageInfo     `json:"storage"`
}

// ConnectionsInfo - RPC connection counters
type ConnectionsInfo struct {
	Current uint64 `json:"current"`
	Peak    uint64 `json:"peak"`
	Total   uint64 `json:"total"`
}

// StorageInfo - record store allocation
type StorageInfo struct {
	Used     uint64 `json:"used"`
	Capacity uint64 `json:"capacity"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := node.Limiter.Limit(); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()

	config, err := node.Engine.Config()
	switch err {
	case nil:
		reply.Initialised = true
		reply.Round = config.RoundID
		board, err := node.Engine.Board()
		if nil != err {
			return err
		}
		reply.Occupied = board.Count()
	case fault.ErrNotInitialised:
	default:
		return err
	}

	if nil != node.connections {
		reply.Connections = ConnectionsInfo{
			Current: node.connections.Current(),
			Peak:    node.connections.Peak(),
			Total:   node.connections.Total(),
		}
	}

	reply.Storage = StorageInfo{
		Used:     node.Store.Used(),
		Capacity: node.Store.Capacity(),
	}
	return nil
}
