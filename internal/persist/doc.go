// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package persist guards writes to the host document. A session takes one
// timestamped backup of the document before anything else happens, and only
// then may the edited document be committed over the original, as often as
// needed. Backups sit next to the original as
//
//	<original>.bak_YYYYMMDDHHMMSS
//
// and are never touched again once written.
package persist
