package blend

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name             string
		fn               gputypes.CompareFunction
		incoming, stored float32
		want             bool
	}{
		{"never", gputypes.CompareFunctionNever, 0, 1, false},
		{"always", gputypes.CompareFunctionAlways, 1, 0, true},
		{"less pass", gputypes.CompareFunctionLess, 0.4, 0.5, true},
		{"less fail equal", gputypes.CompareFunctionLess, 0.5, 0.5, false},
		{"less-equal pass equal", gputypes.CompareFunctionLessEqual, 0.5, 0.5, true},
		{"greater pass", gputypes.CompareFunctionGreater, 0.6, 0.5, true},
		{"greater fail", gputypes.CompareFunctionGreater, 0.4, 0.5, false},
		{"greater-equal pass equal", gputypes.CompareFunctionGreaterEqual, 0.5, 0.5, true},
		{"equal exact", gputypes.CompareFunctionEqual, 0.5, 0.5, true},
		{"equal within tolerance", gputypes.CompareFunctionEqual, 0.5, 0.5 + 5e-7, true},
		{"equal outside tolerance", gputypes.CompareFunctionEqual, 0.5, 0.51, false},
		{"not-equal", gputypes.CompareFunctionNotEqual, 0.5, 0.51, true},
		{"not-equal within tolerance", gputypes.CompareFunctionNotEqual, 0.5, 0.5 + 5e-7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.fn, tt.incoming, tt.stored); got != tt.want {
				t.Errorf("Compare(%v, %v, %v) = %v, want %v", tt.fn, tt.incoming, tt.stored, got, tt.want)
			}
		})
	}
}

// Compare is deterministic: re-testing a depth that was just written with
// the same function must give the same verdict every time.
func TestCompareIdempotent(t *testing.T) {
	stored := float32(0.5)
	incoming := float32(0.5)
	for i := 0; i < 3; i++ {
		if Compare(gputypes.CompareFunctionLessEqual, incoming, stored) != true {
			t.Fatal("LessEqual flapped on repeated evaluation")
		}
		if Compare(gputypes.CompareFunctionLess, incoming, stored) != false {
			t.Fatal("Less flapped on repeated evaluation")
		}
	}
}
