// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"bytes"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"net/rpc/jsonrpc"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/ledger"
	"github.com/bitmark-inc/fpowd/record"
	"github.com/bitmark-inc/fpowd/rpc"
	"github.com/bitmark-inc/fpowd/rpc/application"
	"github.com/bitmark-inc/fpowd/rpc/certificate"
	"github.com/bitmark-inc/fpowd/rpc/fixtures"
	"github.com/bitmark-inc/fpowd/rpc/listeners"
	"github.com/bitmark-inc/fpowd/rpc/state"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

// reserve a free port so the address is known before starting
func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.Nil(t, err, "reserve port")
	address := l.Addr().String()
	_ = l.Close()
	return address
}

func TestInitialiseAndFinalise(t *testing.T) {
	engine, journal, store, err := fixtures.Engine()
	require.Nil(t, err, "engine")
	defer store.Close()

	cert, key, err := fixtures.Certificate("setup")
	require.Nil(t, err, "certificate")

	listen := freeAddress(t)

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Certificate:        cert,
		PrivateKey:         key,
	}
	httpsConfiguration := listeners.HTTPSConfiguration{}

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", engine, journal, store)
	require.Nil(t, err, "initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", engine, journal, store)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise")

	c, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(c)

	config := record.Config{}
	err = client.Call("State.Config", &state.Arguments{}, &config)
	require.Nil(t, err, "config")
	assert.Equal(t, fixtures.Admin, config.Admin, "admin")
	_ = client.Close()

	err = rpc.Finalise()
	assert.Nil(t, err, "finalise")

	err = rpc.Finalise()
	assert.Equal(t, fault.ErrNotInitialised, err, "second finalise")
}

func TestApplyRequiresHostCertificate(t *testing.T) {
	engine, journal, store, err := fixtures.Engine()
	require.Nil(t, err, "engine")
	defer store.Close()

	cert, key, err := fixtures.Certificate("host-only")
	require.Nil(t, err, "certificate")
	clientCert, clientKey, err := fixtures.Certificate("host-client")
	require.Nil(t, err, "client certificate")
	hostClient, err := tls.LoadX509KeyPair(clientCert, clientKey)
	require.Nil(t, err, "client key pair")
	fingerprint := certificate.Fingerprint(hostClient.Certificate[0])

	listen := freeAddress(t)
	httpsListen := freeAddress(t)

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Certificate:        cert,
		PrivateKey:         key,
		Clients:            []string{hex.EncodeToString(fingerprint[:])},
	}
	httpsConfiguration := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{httpsListen},
		Certificate:        cert,
		PrivateKey:         key,
	}

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, "1.0", engine, journal, store)
	require.Nil(t, err, "initialise")
	defer func() {
		_ = rpc.Finalise()
	}()

	// someone claiming to be the admin
	arguments := &application.ApplyArguments{
		Method:    "set_admin(address)void",
		Arguments: []string{hex.EncodeToString(fixtures.Alice[:])},
		Sender:    fixtures.Admin,
	}

	c, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(c)
	err = client.Call("Application.Apply", arguments, &ledger.Receipt{})
	require.NotNil(t, err, "apply without certificate")
	assert.Equal(t, "rpc: can't find service Application.Apply", err.Error(), "apply without certificate")

	config := record.Config{}
	err = client.Call("State.Config", &state.Arguments{}, &config)
	require.Nil(t, err, "read only service")
	_ = client.Close()

	// same over HTTPS
	httpsClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		Timeout: 5 * time.Second,
	}
	body, err := json.Marshal(map[string]interface{}{
		"id":     1,
		"method": "Application.Apply",
		"params": []interface{}{arguments},
	})
	require.Nil(t, err, "body")
	resp, err := httpsClient.Post("https://"+httpsListen+"/fpowd/rpc", "application/json", bytes.NewReader(body))
	require.Nil(t, err, "post")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "apply over https")

	config, err = engineConfig(engine)
	require.Nil(t, err, "config")
	assert.Equal(t, fixtures.Admin, config.Admin, "admin unchanged")

	// the pinned host certificate reaches the ledger
	c, err = tls.Dial("tcp", listen, &tls.Config{
		InsecureSkipVerify: true,
		Certificates:       []tls.Certificate{hostClient},
	})
	require.Nil(t, err, "dial with certificate")
	client = jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Application.Apply", arguments, &ledger.Receipt{})
	require.Nil(t, err, "apply with certificate")

	config, err = engineConfig(engine)
	require.Nil(t, err, "config")
	assert.Equal(t, fixtures.Alice, config.Admin, "admin changed by host")
}

func engineConfig(engine *ledger.Engine) (record.Config, error) {
	c, err := engine.Config()
	if nil != err {
		return record.Config{}, err
	}
	return *c, nil
}
