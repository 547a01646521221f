// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fpowd/messagebus"
)

const minimalConfiguration = `
local M = {}
M.data_directory = "."
M.client_rpc = {
    listen = { "127.0.0.1:2130" },
}
return M
`

const fullConfiguration = `
local M = {}
M.data_directory = "."
M.pidfile = "fpowd.pid"
M.database = {
    directory = "store",
    name = "ledger.leveldb",
    capacity = 65536,
}
M.client_rpc = {
    maximum_connections = 5,
    listen = { "127.0.0.1:2130", "[::1]:2130" },
    certificate = "/etc/fpowd/rpc.crt",
    private_key = "/etc/fpowd/rpc.key",
    clients = { "5f0c32b5eb4f7e2e4e1e5d1ec3b4a7cfa5f3d0a4d0c1a4b5c6d7e8f901234567" },
}
M.rounds = {
    interval = "90s",
}
M.events = {
    queue_size = 20,
}
M.logging = {
    directory = "logs",
    file = "node.log",
    size = 4096,
    count = 3,
    levels = {
        DEFAULT = "info",
        rounds = "debug",
    },
}
return M
`

func writeConfiguration(t *testing.T, content string) (string, string, func()) {
	dir, err := ioutil.TempDir("", "fpowd-config")
	require.Nil(t, err, "temp dir")
	fileName := filepath.Join(dir, "fpowd.conf")
	require.Nil(t, ioutil.WriteFile(fileName, []byte(content), 0o600), "write")
	return dir, fileName, func() { _ = os.RemoveAll(dir) }
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, fileName, cleanup := writeConfiguration(t, minimalConfiguration)
	defer cleanup()

	c, err := getConfiguration(fileName)
	require.Nil(t, err, "configuration")

	assert.Equal(t, "", c.PidFile, "pid file")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory), c.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, defaultLevelDBDirectory, defaultDatabase), c.Database.Name, "database name")
	assert.Equal(t, uint64(0), c.Database.Capacity, "capacity")

	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "rpc clients")
	assert.Equal(t, []string{"127.0.0.1:2130"}, c.ClientRPC.Listen, "rpc listen")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), c.ClientRPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, defaultKeyFile), c.ClientRPC.PrivateKey, "key")
	assert.Equal(t, 0, len(c.HttpsRPC.Listen), "https disabled")

	assert.Equal(t, messagebus.DefaultQueueSize, c.Events.QueueSize, "queue size")
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), c.Logging.Directory, "log directory")
	assert.Equal(t, defaultLogFile, c.Logging.File, "log file")

	interval, err := c.RoundInterval()
	assert.Nil(t, err, "interval")
	assert.Equal(t, time.Duration(0), interval, "rounds disabled")

	for _, d := range []string{c.Database.Directory, c.Logging.Directory} {
		info, err := os.Stat(d)
		require.Nil(t, err, "stat: %s", d)
		assert.True(t, info.IsDir(), "directory: %s", d)
	}
}

func TestGetConfigurationFull(t *testing.T) {
	dir, fileName, cleanup := writeConfiguration(t, fullConfiguration)
	defer cleanup()

	c, err := getConfiguration(fileName)
	require.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Join(dir, "fpowd.pid"), c.PidFile, "pid file")
	assert.Equal(t, filepath.Join(dir, "store", "ledger.leveldb"), c.Database.Name, "database name")
	assert.Equal(t, uint64(65536), c.Database.Capacity, "capacity")

	assert.Equal(t, uint64(5), c.ClientRPC.MaximumConnections, "rpc clients")
	assert.Equal(t, 2, len(c.ClientRPC.Listen), "rpc listen")
	assert.Equal(t, "/etc/fpowd/rpc.crt", c.ClientRPC.Certificate, "absolute certificate kept")
	assert.Equal(t, "/etc/fpowd/rpc.key", c.ClientRPC.PrivateKey, "absolute key kept")
	assert.Equal(t, []string{"5f0c32b5eb4f7e2e4e1e5d1ec3b4a7cfa5f3d0a4d0c1a4b5c6d7e8f901234567"}, c.ClientRPC.Clients, "host clients")

	assert.Equal(t, 20, c.Events.QueueSize, "queue size")
	assert.Equal(t, filepath.Join(dir, "logs"), c.Logging.Directory, "log directory")
	assert.Equal(t, "node.log", c.Logging.File, "log file")
	assert.Equal(t, 3, c.Logging.Count, "log count")
	assert.Equal(t, "debug", c.Logging.Levels["rounds"], "log level")

	interval, err := c.RoundInterval()
	assert.Nil(t, err, "interval")
	assert.Equal(t, 90*time.Second, interval, "interval")
}

func TestGetConfigurationErrors(t *testing.T) {
	configurations := []string{
		"local M = {}\nreturn M\n", // no data directory
		"local M = {}\nM.data_directory = \"missing\"\nreturn M\n",
		"local M = {}\nM.data_directory = \".\"\nM.rounds = { interval = \"soon\" }\nreturn M\n",
		"local M = {}\nM.data_directory = \".\"\nM.rounds = { interval = \"-5s\" }\nreturn M\n",
		"local M = {}\nM.data_directory = \".\"\nM.database = { name = \"sub/ledger.leveldb\" }\nreturn M\n",
		"local M = {}\nM.data_directory = \".\"\nM.logging = { file = \"sub/fpowd.log\" }\nreturn M\n",
	}

	for i, content := range configurations {
		_, fileName, cleanup := writeConfiguration(t, content)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, "%d: expected error", i)
		cleanup()
	}

	_, err := getConfiguration("/nonexistent/fpowd.conf")
	assert.NotNil(t, err, "missing file")
}
