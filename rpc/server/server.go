// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/counter"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/rpc/application"
	"github.com/bitmark-inc/fpowd/rpc/node"
	"github.com/bitmark-inc/fpowd/rpc/outbound"
	"github.com/bitmark-inc/fpowd/rpc/state"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
)

// Create - the public server with the read only services and the host
// server that can also apply calls and drain the outbound journal
func Create(log *logger.L, version string, engine *ledger.Engine, journal *settlement.Journal, store *storage.Store, connections *counter.Gauge) (*rpc.Server, *rpc.Server) {

	start := time.Now().UTC()

	public := rpc.NewServer()
	host := rpc.NewServer()

	for _, server := range []*rpc.Server{public, host} {
		_ = server.Register(state.New(log, engine))
		_ = server.Register(node.New(log, engine, store, start, version, connections))
	}

	_ = host.Register(application.New(log, engine))
	_ = host.Register(outbound.New(log, engine, journal))

	return public, host
}
