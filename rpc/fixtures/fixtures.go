// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/rpc/certificate"
	"github.com/bitmark-inc/fpowd/settlement"
	"github.com/bitmark-inc/fpowd/storage"
)

const (
	dir          = "testing"
	LogCategory  = "testing"
	TokenAssetID = 42
)

var (
	Admin       = account.Address{0xad}
	Application = account.Address{0xa0}
	Alice       = account.Address{0x01}
)

// Parameters - values every fixture engine is created with
var Parameters = ledger.Parameters{
	FeeBps:       100,
	AlgoRate:     100,
	FpowRate:     1000,
	YieldRateBps: 100,
	BuybackBps:   5000,
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0o700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}

	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

// Engine - an in-memory engine already created by Admin with its journal
func Engine() (*ledger.Engine, *settlement.Journal, *storage.Store, error) {
	store, err := storage.OpenMemory(0)
	if nil != err {
		return nil, nil, nil, err
	}

	journal := settlement.NewJournal(logger.New(LogCategory), store.Pool.Outbound)
	engine := ledger.New(store, journal)

	_, err = engine.Apply(context.Background(), &ledger.Call{
		Sender: Admin,
		Operation: ledger.Create{
			TokenAssetID: TokenAssetID,
			Application:  Application,
			Parameters:   Parameters,
		},
	})
	if nil != err {
		store.Close()
		return nil, nil, nil, err
	}
	return engine, journal, store, nil
}

// Certificate - generate a self-signed pair inside the testing directory
func Certificate(name string) (string, string, error) {
	cert := filepath.Join(dir, name+".crt")
	key := filepath.Join(dir, name+".key")
	if err := certificate.Generate(name, cert, key, []string{"127.0.0.1"}); nil != err {
		return "", "", err
	}
	return cert, key, nil
}
