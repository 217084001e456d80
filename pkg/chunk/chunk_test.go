package chunk

import (
	"errors"
	"reflect"
	"testing"

	"skard/pkg/utils"
	"skard/pkg/value"
)

func TestOpCodeNames(t *testing.T) {
	tests := []struct {
		op   OpCode
		want string
	}{
		{OpReturn, "OP_RETURN"},
		{OpDump, "OP_DUMP"},
		{OpConstant, "OP_CONSTANT"},
		{OpConstantLong, "OP_CONSTANT_LONG"},
		{OpCode(0xFF), "OpCode(255)"},
	}
	for _, tc := range tests {
		if got := tc.op.String(); got != tc.want {
			t.Errorf("OpCode(%d).String() = %q; want %q", byte(tc.op), got, tc.want)
		}
	}
	for _, name := range []string{"DUMP", "OP_DUMP"} {
		if op, ok := Lookup(name); !ok || op != OpDump {
			t.Errorf("Lookup(%q) = %v, %v", name, op, ok)
		}
	}
	if _, ok := Lookup("NOPE"); ok {
		t.Error("Lookup(NOPE) should fail")
	}
}

func TestEmitGrowsAndRecordsPositions(t *testing.T) {
	c := New()
	for i := 0; i < 20; i++ {
		if err := c.Emit(byte(i), 3, i+1); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if c.Len() != 20 {
		t.Fatalf("Len = %d; want 20", c.Len())
	}
	// 0 -> 8 -> 16 -> 32
	if cap(c.Code) != 32 {
		t.Errorf("cap(Code) = %d; want 32", cap(c.Code))
	}
	if got := c.Debug.Line(19); got != 3 {
		t.Errorf("Line(19) = %d; want 3", got)
	}
	if got := c.Debug.Column(19); got != 20 {
		t.Errorf("Column(19) = %d; want 20", got)
	}
}

func TestShortConstantsOnly(t *testing.T) {
	c := New()
	for i := 0; i <= MaxShortIndex; i++ {
		index, err := c.EmitConstant(value.Int(int64(i)), 1, 1)
		if err != nil {
			t.Fatalf("EmitConstant(%d): %v", i, err)
		}
		if index != i {
			t.Fatalf("index = %d; want %d", index, i)
		}
	}
	if c.Len() != 2*(MaxShortIndex+1) {
		t.Fatalf("Len = %d; want %d", c.Len(), 2*(MaxShortIndex+1))
	}
	for offset := 0; offset < c.Len(); offset += 2 {
		if OpCode(c.Code[offset]) != OpConstant {
			t.Fatalf("offset %d: %v; want OP_CONSTANT", offset, OpCode(c.Code[offset]))
		}
		if idx, ok := c.ConstantIndex(offset); !ok || idx != offset/2 {
			t.Fatalf("ConstantIndex(%d) = %d, %v", offset, idx, ok)
		}
	}
}

func TestLongConstantRoundTrip(t *testing.T) {
	c := New()
	for i := 0; i < 70000; i++ {
		if _, err := c.AddConstant(value.Real(float64(i))); err != nil {
			t.Fatalf("AddConstant: %v", err)
		}
	}
	index, err := c.EmitConstant(value.Real(0.42), 9, 4)
	if err != nil {
		t.Fatalf("EmitConstant: %v", err)
	}
	if index != 70000 {
		t.Fatalf("index = %d; want 70000", index)
	}
	want := []byte{byte(OpConstantLong), 0x70, 0x11, 0x01}
	if !reflect.DeepEqual(c.Code, want) {
		t.Errorf("Code = % x; want % x", c.Code, want)
	}
	if got, ok := c.ConstantIndex(0); !ok || got != 70000 {
		t.Errorf("ConstantIndex(0) = %d, %v; want 70000", got, ok)
	}
	if got := c.Debug.Runs(); !reflect.DeepEqual(got, []LineRun{{Line: 9, Count: 4}}) {
		t.Errorf("Runs = %v", got)
	}
}

func TestFirstLongIndex(t *testing.T) {
	c := New()
	for i := 0; i <= MaxShortIndex; i++ {
		c.AddConstant(value.Int(0))
	}
	if _, err := c.EmitConstant(value.Int(1), 1, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{byte(OpConstantLong), 0x00, 0x01, 0x00}
	if !reflect.DeepEqual(c.Code, want) {
		t.Errorf("Code = % x; want % x", c.Code, want)
	}
}

func TestTooManyConstants(t *testing.T) {
	c := New()
	c.limit = 300
	for i := 0; i < 300; i++ {
		if _, err := c.EmitConstant(value.Int(int64(i)), 1, 1); err != nil {
			t.Fatalf("EmitConstant(%d): %v", i, err)
		}
	}
	codeLen := c.Len()
	_, err := c.EmitConstant(value.Int(300), 1, 1)
	if !errors.Is(err, utils.ErrTooManyConstants) {
		t.Fatalf("err = %v; want ErrTooManyConstants", err)
	}
	if !utils.IsFatal(err) {
		t.Error("pool overflow should be fatal")
	}
	if err.Error() != "Too many constants in one chunk" {
		t.Errorf("message = %q", err.Error())
	}
	if len(c.Constants) != 300 || c.Len() != codeLen {
		t.Error("failed EmitConstant must not change the chunk")
	}
}

func TestConstantIndexTruncated(t *testing.T) {
	c := New()
	c.Emit(byte(OpConstantLong), 1, 1)
	c.Emit(0x01, 1, 1)
	if _, ok := c.ConstantIndex(0); ok {
		t.Error("truncated operand should not decode")
	}
	if _, ok := c.ConstantIndex(5); ok {
		t.Error("offset past the end should not decode")
	}
}

func TestFree(t *testing.T) {
	c := New()
	c.EmitConstant(value.Real(1), 1, 1)
	c.Free()
	if c.Code != nil || c.Constants != nil || c.Debug.Len() != 0 || c.Debug.Runs() != nil {
		t.Error("Free should release every buffer")
	}
}
