// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package session

// Kind classifies a notification.
type Kind int

const (
	Info Kind = iota
	Error
	Confirm
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Confirm:
		return "confirm"
	default:
		return "info"
	}
}

// Notifier is how a session talks to whoever is driving it. The return value
// is the user's answer for Confirm and ignored otherwise.
type Notifier interface {
	Notify(kind Kind, message string) bool
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind Kind, message string) bool

func (f NotifierFunc) Notify(kind Kind, message string) bool {
	return f(kind, message)
}

// quiet answers yes to every confirmation and drops everything else.
type quiet struct{}

func (quiet) Notify(kind Kind, _ string) bool { return kind == Confirm }
