// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fpowd/account"
	"github.com/bitmark-inc/fpowd/fault"
)

// requireAdmin - only the current admin may continue
func (s *state) requireAdmin() error {
	if s.call.Sender != s.config.Admin {
		return fault.ErrUnauthorised
	}
	return nil
}

// the record owner an operation acts on: the first referenced
// account if any, otherwise the caller
func (c *Call) authority() account.Address {
	if len(c.Accounts) > 0 {
		return c.Accounts[0]
	}
	return c.Sender
}

// setAdmin - hand over the admin capability
func (e *Engine) setAdmin(s *state, op SetAdmin) error {
	if err := s.requireAdmin(); nil != err {
		return err
	}
	if op.Admin.IsZero() {
		return fault.ErrInvalidAdmin
	}
	e.log.Infof("admin: %s -> %s", s.config.Admin, op.Admin)
	s.config.Admin = op.Admin
	return nil
}
