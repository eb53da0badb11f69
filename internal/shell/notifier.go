// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package shell

import "github.com/tfctl/tunnelcfg/internal/session"

// notifier records the latest message for the status line. Confirmations are
// asked by the model before calling into the session, so the answer is
// whatever the model armed.
type notifier struct {
	kind    session.Kind
	message string
	armed   bool
}

func (n *notifier) Notify(kind session.Kind, message string) bool {
	if kind == session.Confirm {
		return n.armed
	}
	n.kind = kind
	n.message = message
	return false
}

func (n *notifier) clear() {
	n.kind = session.Info
	n.message = ""
}
