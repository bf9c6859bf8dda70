package utils_test

import (
	"errors"
	"math"
	"testing"

	"github.com/litebase/memvfs/internal/utils"
)

func TestSafeInt64ToInt(t *testing.T) {
	value, err := utils.SafeInt64ToInt(4096)

	if err != nil {
		t.Fatalf("SafeInt64ToInt() failed, expected nil, got %v", err)
	}

	if value != 4096 {
		t.Errorf("SafeInt64ToInt() failed, expected 4096, got %d", value)
	}

	if _, err := utils.SafeInt64ToInt(-1); err == nil {
		t.Errorf("SafeInt64ToInt() failed, expected error for negative value")
	}
}

func TestSafeAddInt64(t *testing.T) {
	sum, err := utils.SafeAddInt64(10, 3)

	if err != nil {
		t.Fatalf("SafeAddInt64() failed, expected nil, got %v", err)
	}

	if sum != 13 {
		t.Errorf("SafeAddInt64() failed, expected 13, got %d", sum)
	}

	_, err = utils.SafeAddInt64(math.MaxInt64, 1)

	if !errors.Is(err, utils.ErrIntegerOverflow) {
		t.Errorf("SafeAddInt64() failed, expected ErrIntegerOverflow, got %v", err)
	}

	if _, err := utils.SafeAddInt64(-1, 1); err == nil {
		t.Errorf("SafeAddInt64() failed, expected error for negative operand")
	}
}
