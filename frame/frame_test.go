package frame

import (
	"errors"
	"testing"
)

func TestFromRaw(t *testing.T) {
	raw := [][]uint16{
		{0, 512, MaxRawSample},
		{1, 2, 3},
	}
	f := FromRaw(raw)

	if f.Lines() != 2 || f.Samples() != 3 {
		t.Fatalf("shape %dx%d, want 2x3", f.Lines(), f.Samples())
	}
	if f.Data[0][1] != 512 || f.Data[0][2] != 1023 || f.Data[1][0] != 1 {
		t.Fatalf("unexpected converted values: %v", f.Data)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		frame   *Frame
		wantErr bool
	}{
		{"nil", nil, true},
		{"no lines", &Frame{}, true},
		{"no samples", &Frame{Data: [][]float64{{}}}, true},
		{"ragged", &Frame{Data: [][]float64{{1, 2}, {1}}}, true},
		{"valid", New(4, 16), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.frame.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFrame) {
					t.Fatalf("Validate() = %v, want ErrInvalidFrame", err)
				}
			} else if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}
