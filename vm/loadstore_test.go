package vm

import "testing"

func TestLoadStoreGlobal(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmI32, Operand: 0, PayloadLen: 1, ImmTypes: [3]ImmType{ImmI32}, Payload: [3]uint32{uint32(int32(7))}},
		Instruction{Opcode: OpStoreGlobal, Operand: 0, PayloadLen: 1, Payload: [3]uint32{3}},
		Instruction{Opcode: OpLoadGlobal, Operand: 1, PayloadLen: 1, Payload: [3]uint32{3}},
		Instruction{Opcode: OpHalt},
	)
	machine := newLoadedVM(t, program)
	if status := machine.Run(); status != StatusOk {
		t.Fatalf("Run() = %s", status)
	}
	if machine.Globals[3].I32 != 7 {
		t.Errorf("Globals[3] = %v, want I32(7)", machine.Globals[3])
	}
	if got := machine.CurrentFrame().StackVars[1]; got.I32 != 7 {
		t.Errorf("stack-var 1 = %v, want I32(7)", got)
	}
}

func TestLoadStoreLocal(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmU32, Operand: 0, PayloadLen: 1, ImmTypes: [3]ImmType{ImmU32}, Payload: [3]uint32{9}},
		Instruction{Opcode: OpStoreLocal, Operand: 0, PayloadLen: 1, Payload: [3]uint32{5}},
		Instruction{Opcode: OpLoadLocal, Operand: 1, PayloadLen: 1, Payload: [3]uint32{5}},
		Instruction{Opcode: OpHalt},
	)
	machine := newLoadedVM(t, program)
	if status := machine.Run(); status != StatusOk {
		t.Fatalf("Run() = %s", status)
	}
	if got := machine.CurrentFrame().Locals[5]; got.U32 != 9 {
		t.Errorf("Locals[5] = %v, want U32(9)", got)
	}
	if got := machine.CurrentFrame().StackVars[1]; got.U32 != 9 {
		t.Errorf("stack-var 1 = %v, want U32(9)", got)
	}
}

func TestLoadStoreReturn(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmI32, Operand: 0, PayloadLen: 1, ImmTypes: [3]ImmType{ImmI32}, Payload: [3]uint32{i32Bits(-3)}},
		Instruction{Opcode: OpStoreReturn, Operand: 0, PayloadLen: 1, Payload: [3]uint32{0}},
		Instruction{Opcode: OpLoadReturn, Operand: 1, PayloadLen: 1, Payload: [3]uint32{0}},
		Instruction{Opcode: OpHalt},
	)
	machine := newLoadedVM(t, program)
	if status := machine.Run(); status != StatusOk {
		t.Fatalf("Run() = %s", status)
	}
	if got := machine.CurrentFrame().StackVars[1]; got.I32 != -3 {
		t.Errorf("stack-var 1 = %v, want I32(-3)", got)
	}
}

func TestStackVarCrossFrameAddressing(t *testing.T) {
	// Frame 0's stack-var 2 is set, then from frame 0 itself we read it
	// back through the cross-frame (frame_idx, var_idx) addressing path.
	ref := uint32(0) | (uint32(2) << 16)
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmU32, Operand: 2, PayloadLen: 1, ImmTypes: [3]ImmType{ImmU32}, Payload: [3]uint32{55}},
		Instruction{Opcode: OpLoadStackVar, Operand: 0, PayloadLen: 1, Payload: [3]uint32{ref}},
		Instruction{Opcode: OpHalt},
	)
	machine := newLoadedVM(t, program)
	if status := machine.Run(); status != StatusOk {
		t.Fatalf("Run() = %s", status)
	}
	if got := machine.CurrentFrame().StackVars[0]; got.U32 != 55 {
		t.Errorf("stack-var 0 = %v, want U32(55)", got)
	}
}

func TestInvalidGlobalIdx(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadGlobal, Operand: 0, PayloadLen: 1, Payload: [3]uint32{GlobalCount}},
	)
	machine := newLoadedVM(t, program)
	status := machine.Step()
	if status != StatusInvalidGlobalIdx {
		t.Errorf("status = %s, want InvalidGlobalIdx", status)
	}
}

func TestInvalidLocalIdx(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadLocal, Operand: 0, PayloadLen: 1, Payload: [3]uint32{LocalCount}},
	)
	machine := newLoadedVM(t, program)
	status := machine.Step()
	if status != StatusInvalidLocalIdx {
		t.Errorf("status = %s, want InvalidLocalIdx", status)
	}
}

func TestInvalidStackVarIdx(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmI32, Operand: uint8(StackVarCount), PayloadLen: 1, ImmTypes: [3]ImmType{ImmI32}, Payload: [3]uint32{0}},
	)
	machine := newLoadedVM(t, program)
	status := machine.Step()
	if status != StatusInvalidStackVarIdx {
		t.Errorf("status = %s, want InvalidStackVarIdx", status)
	}
}
