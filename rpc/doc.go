// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the incoming JSON RPC requests
// from hosts submitting application calls to fpowd
//
// standard golang RPC services can be used on the client side to
// access these services. Application and Outbound are only served to a
// host whose client certificate fingerprint is configured; the read
// only services are also offered as a single POST endpoint over HTTPS
package rpc
