package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if code := CodeOf(ClaimConflict("already claimed")); code != CodeClaimConflict {
		t.Errorf("Expected %s, got %s", CodeClaimConflict, code)
	}

	// wrapped errors still report their code
	wrapped := fmt.Errorf("handler: %w", NotFound("missing"))
	if code := CodeOf(wrapped); code != CodeNotFound {
		t.Errorf("Expected %s through wrap, got %s", CodeNotFound, code)
	}

	// unrecognized errors map to a store failure
	if code := CodeOf(errors.New("boom")); code != CodeStoreDown {
		t.Errorf("Expected %s for a plain error, got %s", CodeStoreDown, code)
	}
}

func TestStoreUnavailable_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreUnavailable(fmt.Errorf("insert request: %w", cause))

	if !errors.Is(err, cause) {
		t.Error("Expected the cause to survive wrapping")
	}
	if !Is(err, CodeStoreDown) {
		t.Errorf("Expected %s, got %s", CodeStoreDown, CodeOf(err))
	}
}
