package simerrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/discrete-sim/kernel/simerrors"
)

func TestErrorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"InvalidName", &simerrors.InvalidNameError{Subject: "component", Name: ""}, simerrors.ErrInvalidName},
		{"DuplicateSibling", &simerrors.DuplicateSiblingError{ParentPath: "a", Name: "b"}, simerrors.ErrDuplicateSibling},
		{"InvalidKey", &simerrors.InvalidKeyError{Key: ""}, simerrors.ErrInvalidKey},
		{"AlreadySet", &simerrors.AlreadySetError{Key: "a.b", Time: 5}, simerrors.ErrAlreadySet},
		{"MissingKey", &simerrors.MissingKeyError{Key: "a.b"}, simerrors.ErrMissingKey},
		{"Payload", &simerrors.PayloadError{Event: "tick", Message: "missing"}, simerrors.ErrPayload},
		{"DisconnectedPort", &simerrors.DisconnectedPortError{Owner: "a"}, simerrors.ErrDisconnectedPort},
		{"InactiveTarget", &simerrors.InactiveTargetError{Target: "a"}, simerrors.ErrInactiveTarget},
		{"WorkerStalled", &simerrors.WorkerStalledError{Target: "a", Event: "tick"}, simerrors.ErrWorkerStalled},
		{"WorkerGone", &simerrors.WorkerGoneError{Target: "a"}, simerrors.ErrWorkerGone},
		{"UnhandledEvent", &simerrors.UnhandledEventError{Component: "a", Event: "tick"}, simerrors.ErrUnhandledEvent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(tc.err, tc.want))
			assert.NotEmpty(t, tc.err.Error())
		})
	}
}

func TestWorkerGoneErrorMessageIncludesPanic(t *testing.T) {
	err := &simerrors.WorkerGoneError{Target: "sim.bot", Panic: "boom"}
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "sim.bot")
}
