// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package abi decodes application call arguments into ledger operations
//
// a method is identified by the first four bytes of the SHA-512/256
// digest of its signature, e.g. "deploy(uint64,uint32)void"; each
// argument is a separate byte string: uintN big endian in N/8 bytes,
// byte[32] and address as 32 raw bytes, string as a two byte length
// followed by the text
package abi
