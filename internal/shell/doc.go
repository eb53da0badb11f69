// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package shell is the interactive editor. It renders a session, forwards
// edits to it and shows what the session reports through its notifier. All
// rules live in the session; this package only lays things out.
package shell
