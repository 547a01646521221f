// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"net"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/fault"
)

const minConnectionCount = 1

// Listener - a started server that can be shut down
type Listener interface {
	Serve() error
	Addresses() []net.Addr
	Close()
}

// convert each "IP:PORT" into its network, "*:PORT" listens on both
// tcp4 and tcp6
func parseListenAddress(addrs []string, log *logger.L) ([]string, []string, error) {
	networks := make([]string, len(addrs))
	listen := make([]string, len(addrs))
	for i, address := range addrs {
		host, port, err := net.SplitHostPort(address)
		if nil != err {
			log.Errorf("listen address: %q  error: %s", address, err)
			return nil, nil, fault.ErrInvalidIPAddress
		}

		switch {
		case "*" == host:
			host = "::"
			networks[i] = "tcp"
		case strings.Contains(host, ":"):
			networks[i] = "tcp6"
		default:
			networks[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			log.Errorf("listen address: %q  error: %s", address, fault.ErrInvalidIPAddress)
			return nil, nil, fault.ErrInvalidIPAddress
		}
		listen[i] = net.JoinHostPort(host, port)
	}
	return networks, listen, nil
}
