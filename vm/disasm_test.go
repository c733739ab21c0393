package vm

import (
	"strings"
	"testing"
)

func TestDisassembleAtRendersMnemonicAndOperands(t *testing.T) {
	program := assembleProgram(
		Instruction{Opcode: OpLoadImmI32, Operand: 3, PayloadLen: 1, ImmTypes: [3]ImmType{ImmI32}, Payload: [3]uint32{i32Bits(-7)}},
	)
	machine := newLoadedVM(t, program)
	line := machine.DisassembleAt(0)
	if !strings.Contains(line, "load.i.i32") {
		t.Errorf("disassembly = %q, want mnemonic load.i.i32", line)
	}
	if !strings.Contains(line, "op=3") {
		t.Errorf("disassembly = %q, want operand op=3", line)
	}
	if !strings.Contains(line, "-7") {
		t.Errorf("disassembly = %q, want immediate -7", line)
	}
}

func TestDisassembleAtInvalidInstruction(t *testing.T) {
	machine := newLoadedVM(t, []byte{0x00})
	line := machine.DisassembleAt(0)
	if !strings.Contains(line, "Invalid instruction") {
		t.Errorf("disassembly = %q, want an invalid-instruction message", line)
	}
}

func TestDumpStateOmitsVoidSlots(t *testing.T) {
	machine := New()
	machine.CurrentFrame().StackVars[0] = I32Value(5)
	dump := machine.DumpState()
	if !strings.Contains(dump, "sv[0] = i32:5") {
		t.Errorf("dump = %q, want sv[0] entry", dump)
	}
	if strings.Contains(dump, "sv[1]") {
		t.Errorf("dump unexpectedly shows void stack-var 1")
	}
	if !strings.Contains(dump, "g: (all void)") {
		t.Errorf("dump = %q, want all-void globals marker", dump)
	}
}
