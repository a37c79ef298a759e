// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package result_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/mediashuttle-cli-sdk/sdk/result"
)

func TestFound(t *testing.T) {
	o := result.Found("p1")

	v, ok := o.Value()
	require.True(t, ok)
	assert.Equal(t, "p1", v)
	assert.Equal(t, result.KindFound, o.Kind())
	assert.NoError(t, o.Err())
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	o := result.NotFound[string](result.SubjectPortal, "Drop")

	_, ok := o.Value()
	assert.False(t, ok)
	assert.Equal(t, result.KindNotFound, o.Kind())
	assert.Equal(t, result.SubjectPortal, o.Subject())
	assert.Equal(t, "Drop", o.Name())
	assert.ErrorIs(t, o.Err(), result.ErrPortalNotFound)
	assert.NotErrorIs(t, o.Err(), result.ErrAccountNotFound)
}

func TestTransportErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	o := result.TransportError[int](cause)

	_, err := o.Get()
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, o.Cause())
	assert.Equal(t, "transport_error", o.Kind().String())
}
