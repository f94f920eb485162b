package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{&RequestError{URL: "https://bad", Cause: errors.New("parse")}, ErrInvalidURL},
		{&TransferError{URL: "https://x", StatusCode: 404, Detail: "not found"}, ErrNetwork},
		{&TransferError{URL: "https://x", Cause: errors.New("connection refused")}, ErrNetwork},
		{&ResponseError{URL: "https://x", Cause: errors.New("unexpected EOF")}, ErrInvalidResponse},
		{&DestinationError{Cause: errors.New("no home")}, ErrDestinationUnavailable},
		{&WriteError{Path: "/tmp/x.vsix", Cause: errors.New("permission denied")}, ErrFileWriteFailed},
	}

	for _, tc := range cases {
		kind, ok := KindOf(tc.err)
		if !ok {
			t.Errorf("Expected KindOf to classify %v", tc.err)
			continue
		}
		if kind != tc.kind {
			t.Errorf("Expected kind %s for %v, got %s", tc.kind, tc.err, kind)
		}
	}
}

func TestKindOfWrappedError(t *testing.T) {
	inner := &WriteError{Path: "/tmp/x.vsix", Cause: errors.New("busy")}
	wrapped := fmt.Errorf("task failed: %w", inner)

	kind, ok := KindOf(wrapped)
	if !ok {
		t.Fatal("Expected wrapped download error to be classified")
	}
	if kind != ErrFileWriteFailed {
		t.Errorf("Expected %s, got %s", ErrFileWriteFailed, kind)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if _, ok := KindOf(errors.New("something else")); ok {
		t.Error("Expected foreign error to not be classified")
	}
	if _, ok := KindOf(nil); ok {
		t.Error("Expected nil to not be classified")
	}
}

func TestTransferErrorMessage(t *testing.T) {
	withStatus := &TransferError{URL: "https://x", StatusCode: 404, Detail: "no such extension"}
	if !strings.Contains(withStatus.Error(), "404") {
		t.Errorf("Expected status code in message, got %q", withStatus.Error())
	}
	if !strings.Contains(withStatus.Error(), "no such extension") {
		t.Errorf("Expected detail in message, got %q", withStatus.Error())
	}

	transport := &TransferError{URL: "https://x", Cause: errors.New("dial tcp: connection refused")}
	if strings.Contains(transport.Error(), "HTTP") {
		t.Errorf("Transport failure should not mention an HTTP status, got %q", transport.Error())
	}
	if !errors.Is(transport, transport.Cause) && transport.Unwrap() != transport.Cause {
		t.Error("Expected Unwrap to expose the underlying cause")
	}
}
