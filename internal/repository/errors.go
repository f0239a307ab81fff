// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel error values reused across
// repositories so handlers can distinguish failure scenarios without
// string matching: not-found maps to 404, duplicate id to 409, and
// ErrAlreadyIssued lets bulk generation skip a participant who picked
// up a certificate between the eligibility query and the insert.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicateID is returned when a caller-supplied certificate id
// already exists. No write is performed.
var ErrDuplicateID = errors.New("certificate id already exists")

// ErrAlreadyIssued is returned when inserting a certificate for a
// participant who already holds one; the storage layer's uniqueness
// constraint on participant_id raises it even under concurrent
// generation.
var ErrAlreadyIssued = errors.New("participant already has a certificate")

// ErrConflict signals that an operation cannot proceed due to
// conflicting state. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062), optionally on a specific key name.
func isDuplicateKey(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return false
	}
	return key == "" || strings.Contains(msg, strings.ToLower(key))
}
