// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"encoding/hex"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fpowd/counter"
	"github.com/bitmark-inc/fpowd/fault"
	"github.com/bitmark-inc/fpowd/rpc/certificate"
)

const (
	rpcLogName       = "client_rpc"
	handshakeTimeout = 10 * time.Second
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	Clients            []string `gluamapper:"clients" json:"clients"`
}

type rpcListener struct {
	sync.Mutex

	log            *logger.L
	connections    *counter.Gauge
	public         *rpc.Server
	host           *rpc.Server
	clients        map[[32]byte]struct{}
	maxConnections uint64
	tlsConfig      *tls.Config
	networks       []string
	listen         []string
	listeners      []net.Listener
}

// NewRPC - JSON RPC over TLS on every configured address
//
// a connection presenting a client certificate whose SHA3-256
// fingerprint is in the configured clients list is served by host,
// every other connection by public
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	connections *counter.Gauge,
	public *rpc.Server,
	host *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", rpcLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", rpcLogName)
		return nil, fault.ErrMissingParameters
	}

	networks, listen, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	clients, err := parseClients(configuration.Clients, log)
	if nil != err {
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", rpcLogName, certificateFingerprint)
	log.Infof("%s: trusted clients: %d", rpcLogName, len(clients))

	// client certificates are not chained to a CA, only pinned
	serverTLS := tlsConfig.Clone()
	serverTLS.ClientAuth = tls.RequestClientCert

	return &rpcListener{
		log:            log,
		connections:    connections,
		public:         public,
		host:           host,
		clients:        clients,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      serverTLS,
		networks:       networks,
		listen:         listen,
	}, nil
}

// Serve - bind every address then accept in the background
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listen {
		r.log.Infof("starting RPC server: %s", listen)
		l, err := tls.Listen(r.networks[i], listen, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			r.closeAll()
			return err
		}
		r.listeners = append(r.listeners, l)

		go r.accept(l)
	}
	return nil
}

// Addresses - bound addresses, resolving any port zero
func (r *rpcListener) Addresses() []net.Addr {
	r.Lock()
	defer r.Unlock()

	addresses := make([]net.Addr, len(r.listeners))
	for i, l := range r.listeners {
		addresses[i] = l.Addr()
	}
	return addresses
}

// Close - stop accepting, open connections finish their requests
func (r *rpcListener) Close() {
	r.Lock()
	defer r.Unlock()
	r.closeAll()
}

func (r *rpcListener) closeAll() {
	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}

func (r *rpcListener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if err != nil {
			r.log.Infof("rpc accept terminated: %s", err)
			return
		}
		if !r.connections.Acquire(r.maxConnections) {
			r.log.Warnf("connection limit reached, rejecting: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go func() {
			defer r.connections.Release()
			defer conn.Close()

			server, err := r.serverFor(conn)
			if nil != err {
				r.log.Warnf("handshake from: %s  error: %s", conn.RemoteAddr(), err)
				return
			}
			server.ServeCodec(jsonrpc.NewServerCodec(conn))
		}()
	}
}

// complete the handshake and pick the services for the peer
func (r *rpcListener) serverFor(conn net.Conn) (*rpc.Server, error) {
	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return r.public, nil
	}

	_ = tlsConn.SetDeadline(time.Now().Add(handshakeTimeout))
	if err := tlsConn.Handshake(); nil != err {
		return nil, err
	}
	_ = tlsConn.SetDeadline(time.Time{})

	peers := tlsConn.ConnectionState().PeerCertificates
	if 0 == len(peers) {
		return r.public, nil
	}
	fingerprint := certificate.Fingerprint(peers[0].Raw)
	if _, ok := r.clients[fingerprint]; !ok {
		r.log.Warnf("untrusted client: %s  fingerprint: %x", conn.RemoteAddr(), fingerprint)
		return r.public, nil
	}
	r.log.Debugf("host client: %s", conn.RemoteAddr())
	return r.host, nil
}

// hex SHA3-256 certificate fingerprints
func parseClients(fingerprints []string, log *logger.L) (map[[32]byte]struct{}, error) {
	clients := make(map[[32]byte]struct{}, len(fingerprints))
	for _, s := range fingerprints {
		b, err := hex.DecodeString(s)
		if nil != err || 32 != len(b) {
			log.Errorf("client fingerprint: %q  error: %s", s, fault.ErrInvalidClientFingerprint)
			return nil, fault.ErrInvalidClientFingerprint
		}
		var fingerprint [32]byte
		copy(fingerprint[:], b)
		clients[fingerprint] = struct{}{}
	}
	return clients, nil
}
