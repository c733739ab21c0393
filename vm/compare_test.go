package vm

import (
	"math"
	"testing"
)

func runCompare(t *testing.T, loadOp Opcode, a, b uint32, cmpOp Opcode) (Status, uint8) {
	t.Helper()
	program := assembleProgram(
		Instruction{Opcode: loadOp, Operand: 0, PayloadLen: 1, ImmTypes: [3]ImmType{immTypeFor(loadOp)}, Payload: [3]uint32{a}},
		Instruction{Opcode: loadOp, Operand: 1, PayloadLen: 1, ImmTypes: [3]ImmType{immTypeFor(loadOp)}, Payload: [3]uint32{b}},
		Instruction{Opcode: cmpOp, PayloadLen: 2, Payload: [3]uint32{0, 1}},
		Instruction{Opcode: OpHalt},
	)
	machine := newLoadedVM(t, program)
	status := machine.Run()
	return status, machine.Flags
}

func TestCmpI32Flags(t *testing.T) {
	if _, flags := runCompare(t, OpLoadImmI32, 1, 2, OpCmpI32); flags != FlagLess {
		t.Errorf("flags = %x, want FlagLess", flags)
	}
	if _, flags := runCompare(t, OpLoadImmI32, 2, 1, OpCmpI32); flags != FlagGreater {
		t.Errorf("flags = %x, want FlagGreater", flags)
	}
	if _, flags := runCompare(t, OpLoadImmI32, 5, 5, OpCmpI32); flags != FlagZero {
		t.Errorf("flags = %x, want FlagZero", flags)
	}
}

func TestCmpU32Flags(t *testing.T) {
	if _, flags := runCompare(t, OpLoadImmU32, 0, math.MaxUint32, OpCmpU32); flags != FlagLess {
		t.Errorf("flags = %x, want FlagLess", flags)
	}
}

func TestCmpF32NaNClearsAllFlags(t *testing.T) {
	status, flags := runCompare(t, OpLoadImmF32, math.Float32bits(float32(math.NaN())), math.Float32bits(1.0), OpCmpF32)
	if status != StatusOk {
		t.Fatalf("status = %s", status)
	}
	if flags != 0 {
		t.Errorf("flags = %x, want 0 on NaN operand", flags)
	}
}

func TestCmpF32ToleranceAllowsSimultaneousEqualAndLess(t *testing.T) {
	// Within the 1e-6 absolute tolerance, two distinct floats compare
	// equal on Z yet still strictly ordered on L/G (spec's deliberate
	// non-normalization). b is 3 ULP above a: distinct bit patterns,
	// well under the tolerance.
	a := math.Float32bits(1.0)
	b := a + 3
	_, flags := runCompare(t, OpLoadImmF32, a, b, OpCmpF32)
	if flags&FlagZero == 0 {
		t.Errorf("flags = %x, want FlagZero set for near-equal floats", flags)
	}
	if flags&FlagLess == 0 {
		t.Errorf("flags = %x, want FlagLess also set", flags)
	}
}

func TestCmpTypeMismatch(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmI32, Operand: 0, PayloadLen: 1, ImmTypes: [3]ImmType{ImmI32}, Payload: [3]uint32{1}},
		Instruction{Opcode: OpLoadImmU32, Operand: 1, PayloadLen: 1, ImmTypes: [3]ImmType{ImmU32}, Payload: [3]uint32{1}},
		Instruction{Opcode: OpCmpI32, PayloadLen: 2, Payload: [3]uint32{0, 1}},
		Instruction{Opcode: OpHalt},
	)
	machine := newLoadedVM(t, program)
	status := machine.Run()
	if status != StatusTypeMismatch {
		t.Errorf("status = %s, want TypeMismatch", status)
	}
}
