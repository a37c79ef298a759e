// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package result carries the outcome of a lookup against the platform:
// a value, a named missing resource, or the transport failure that
// prevented the lookup from completing.
package result

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindFound Kind = iota
	KindNotFound
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindNotFound:
		return "not_found"
	case KindTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Subject names what was missing in a not-found outcome.
type Subject string

const (
	SubjectAccount Subject = "account"
	SubjectPortal  Subject = "portal"
	SubjectUpload  Subject = "upload"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrPortalNotFound  = errors.New("portal not found")
	ErrUploadNotFound  = errors.New("upload session not returned")
)

func (s Subject) sentinel() error {
	switch s {
	case SubjectAccount:
		return ErrAccountNotFound
	case SubjectPortal:
		return ErrPortalNotFound
	case SubjectUpload:
		return ErrUploadNotFound
	default:
		return fmt.Errorf("%s not found", string(s))
	}
}

type Outcome[T any] struct {
	kind    Kind
	value   T
	subject Subject
	name    string
	cause   error
}

func Found[T any](v T) Outcome[T] {
	return Outcome[T]{kind: KindFound, value: v}
}

// NotFound records that the resource called name of the given subject does not exist.
func NotFound[T any](subject Subject, name string) Outcome[T] {
	return Outcome[T]{kind: KindNotFound, subject: subject, name: name}
}

func TransportError[T any](cause error) Outcome[T] {
	return Outcome[T]{kind: KindTransportError, cause: cause}
}

func (o Outcome[T]) Kind() Kind { return o.kind }

func (o Outcome[T]) IsFound() bool { return o.kind == KindFound }

// Value returns the found value; ok is false for every other outcome.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.kind == KindFound
}

func (o Outcome[T]) Subject() Subject { return o.subject }

func (o Outcome[T]) Name() string { return o.name }

func (o Outcome[T]) Cause() error { return o.cause }

// Err is nil for a found outcome. Not-found outcomes wrap the subject's
// sentinel error, transport errors wrap their cause.
func (o Outcome[T]) Err() error {
	switch o.kind {
	case KindFound:
		return nil
	case KindNotFound:
		return fmt.Errorf("%w: %q", o.subject.sentinel(), o.name)
	default:
		return fmt.Errorf("transport error: %w", o.cause)
	}
}

// Get is the two-value form of Outcome, for callers that only need an error.
func (o Outcome[T]) Get() (T, error) {
	return o.value, o.Err()
}
