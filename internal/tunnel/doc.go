// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tunnel models the Tunnels setting: an ordered list of forwarding
// rules persisted as a single delimited string,
//
//	remoteHost:remotePort:localHost:localPort[,remoteHost:remotePort:...]
//
// Hosts cannot contain ':' or ',' since the format has no escaping.
package tunnel
