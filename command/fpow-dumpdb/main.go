// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1 = "\033[1;36m"
	keyColour2 = "\033[1;31m"
	valColour1 = "\033[1;33m"
	valColour2 = "\033[1;34m"
	endColour  = "\033[0m"
)

type decoder func([]byte) (interface{}, error)

// record decoders by pool field name
var decoders = map[string]decoder{
	"Config":     func(b []byte) (interface{}, error) { return record.UnpackConfig(b) },
	"Treasury":   func(b []byte) (interface{}, error) { return record.UnpackTreasury(b) },
	"Board":      decodeBoard,
	"Miner":      func(b []byte) (interface{}, error) { return record.UnpackMiner(b) },
	"Stake":      func(b []byte) (interface{}, error) { return record.UnpackStake(b) },
	"Round":      func(b []byte) (interface{}, error) { return record.UnpackRound(b) },
	"Automation": func(b []byte) (interface{}, error) { return record.UnpackAutomation(b) },
	"Var":        func(b []byte) (interface{}, error) { return record.UnpackVar(b) },
	"Outbound":   func(b []byte) (interface{}, error) { return record.UnpackOutbound(b) },
}

func decodeBoard(b []byte) (interface{}, error) {
	var board record.Bitmap
	if len(b) != len(board) {
		return nil, fmt.Errorf("board length: %d", len(b))
	}
	copy(board[:], b)
	return struct {
		Squares []int `json:"squares"`
	}{
		Squares: board.Squares(),
	}, nil
}

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "decode", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	// this will be a struct type
	poolType := reflect.TypeOf(storage.Pools{})

	if len(options["list"]) > 0 {
		fmt.Printf(" tags:\n")
		for i := 0; i < poolType.NumField(); i += 1 {
			fieldInfo := poolType.Field(i)
			prefixTag := fieldInfo.Tag.Get("prefix")
			fmt.Printf("       %s → %s\n", prefixTag, fieldInfo.Name)
		}
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--decode] [--colour] [--count=N] --file=FILE tag [--list] [key-prefix]", program)
	}

	colour := len(options["colour"]) > 0
	decode := len(options["decode"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	tag := arguments[0]
	if verbose {
		fmt.Printf("read tag: %s from file: %q\n", tag, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "fpow-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	store, err := storage.Open(filename, storage.ReadOnly, 0)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer store.Close()

	// scan each field to locate tag
	poolValue := reflect.ValueOf(store.Pool)
	p := (*storage.PoolHandle)(nil)
	name := ""
tag_scan:
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		if tag == fieldInfo.Tag.Get("prefix") || tag == fieldInfo.Name {
			p = poolValue.Field(i).Interface().(*storage.PoolHandle)
			name = fieldInfo.Name
			break tag_scan
		}
	}
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	cursor := p.NewFetchCursor()
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}

	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	ck1, ck2, cv1, cv2, ce := "", "", "", "", ""
	if colour {
		ck1, ck2, cv1, cv2, ce = keyColour1, keyColour2, valColour1, valColour2, endColour
	}

	for i, e := range data {
		fmt.Printf("%d: %sKey: %s%x%s\n", i, ck1, ck2, e.Key, ce)
		if !decode {
			fmt.Printf("%d: %sVal: %s%x%s\n", i, cv1, cv2, e.Value, ce)
			continue
		}

		item, err := decoders[name](e.Value)
		if nil != err {
			fmt.Printf("%d: %sVal: %sdecode error: %s%s\n", i, cv1, cv2, err, ce)
			continue
		}
		b, err := json.MarshalIndent(item, "", "  ")
		if nil != err {
			exitwithstatus.Message("%s: json error: %s", program, err)
		}
		fmt.Printf("%d: %sVal: %s%s%s\n", i, cv1, cv2, b, ce)
	}
}
