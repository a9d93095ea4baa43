package bignum

import "testing"

func TestScan(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		words        []Word
		plain        bool
		wantShift    uint
		wantTerminal bool
	}{
		{"zero", []Word{0}, false, 0, true},
		{"one", []Word{1}, false, 0, true},
		{"power of two", []Word{8}, false, 3, true},
		{"even", []Word{6}, false, 1, false},
		{"odd", []Word{27}, false, 0, false},
		{"power of two in the second word", []Word{0, 1}, false, W, true},
		{"no shortcut on the top word", []Word{5}, false, 0, false},
		{"shortcut below the top word", []Word{5, 1}, false, 2, false},
		{"repeated shortcut", []Word{21, 1}, false, 4, false},
		{"shortcut after trailing zeros", []Word{0b10100, 1}, false, 4, false},
		{"plain ignores the shortcut", []Word{21, 1}, true, 0, false},
		{"odd above zero words", []Word{0, 0, 3}, false, 2 * W, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := FromWords(tt.words)
			scan := Scan
			if tt.plain {
				scan = ScanPlain
			}
			shift, terminal := scan(z)
			if shift != tt.wantShift || terminal != tt.wantTerminal {
				t.Errorf("got (%d, %v), want (%d, %v)", shift, terminal, tt.wantShift, tt.wantTerminal)
			}
		})
	}
}

// TestScan_ZeroBuffer covers a buffer whose words are all zero, which the
// constructors never produce but a caller-owned slice can.
func TestScan_ZeroBuffer(t *testing.T) {
	t.Parallel()
	shift, terminal := scan(make([]Word, 4), true)
	if shift != 0 || !terminal {
		t.Errorf("got (%d, %v), want (0, true)", shift, terminal)
	}
}
