package vm

import (
	"fmt"
	"math"
	"strings"
)

// DisassembleAt decodes and renders the instruction at byte offset pc as
// a single line of mnemonic + operand text. It never mutates vm state
// and never advances pc; it is the "disassembler hook" external
// interface from spec §6, consumed by host tooling (the debugger TUI,
// a future CLI disassembler).
func (vm *VM) DisassembleAt(pc uint32) string {
	ins, status := decodeInstruction(vm.Program[:], vm.ProgramLen, pc)
	if status != StatusOk {
		return fmt.Sprintf("%08x: <%s>", pc, status)
	}
	if !ins.Opcode.IsValid() {
		return fmt.Sprintf("%08x: <invalid opcode 0x%02x>", pc, uint8(ins.Opcode))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%08x: %-12s", pc, ins.Opcode.String())
	if ins.Operand != 0 || usesOperandAsSlot(ins.Opcode) {
		fmt.Fprintf(&b, " op=%d", ins.Operand)
	}
	for i := uint8(0); i < ins.PayloadLen; i++ {
		fmt.Fprintf(&b, " %s", disassembleImm(ins.ImmTypes[i], ins.Payload[i]))
	}
	return b.String()
}

// usesOperandAsSlot reports whether the opcode's operand byte addresses
// a destination/source slot, so the disassembler always shows it even
// when the slot index happens to be 0.
func usesOperandAsSlot(op Opcode) bool {
	switch op {
	case OpNop, OpHalt, OpJmp, OpJz, OpJnz, OpJlt, OpJgt, OpJle, OpJge, OpCall, OpRet,
		OpCmpI32, OpCmpU32, OpCmpF32, OpStrCmp, OpStrSetChr,
		OpPrintI32, OpPrintU32, OpPrintF32, OpPrintStr, OpPrintln, OpReadStr, OpBufClear:
		return false
	default:
		return true
	}
}

func disassembleImm(t ImmType, word uint32) string {
	switch t {
	case ImmNone:
		return "-"
	case ImmU8Quad:
		return fmt.Sprintf("0x%02x", word&0xFF)
	case ImmU16Pair:
		return fmt.Sprintf("0x%04x", word&0xFFFF)
	case ImmU32, ImmGlobalRef, ImmBufferRef, ImmBufferPos:
		return fmt.Sprintf("%d", word)
	case ImmI32:
		return fmt.Sprintf("%d", int32(word))
	case ImmF32:
		return fmt.Sprintf("%g", math.Float32frombits(word))
	case ImmStackVarRef:
		frameIdx, varIdx := unpackStackVarRef(word)
		return fmt.Sprintf("(frame=%d,var=%d)", frameIdx, varIdx)
	default:
		return fmt.Sprintf("0x%08x", word)
	}
}

// DumpState renders a summary of the VM state as a multi-line text block
// (spec §6's dump_state hook): pc/sp/flags/last_error, the non-Void
// stack-vars, locals and return value of the current frame, every
// non-Void global, and the tag and capacity of every non-Void buffer.
// Frames other than the current one and buffer contents are not shown.
// Like DisassembleAt, this is diagnostic-only and never mutates state.
func (vm *VM) DumpState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pc=%08x sp=%d flags=%s last_error=%s\n", vm.PC, vm.SP, flagsString(vm.Flags), vm.LastError)

	fmt.Fprintf(&b, "frame[%d]:\n", vm.SP)
	frame := vm.CurrentFrame()
	for i, v := range frame.StackVars {
		if v.Tag == TagVoid {
			continue
		}
		fmt.Fprintf(&b, "  sv[%d] = %s\n", i, valueString(v))
	}
	for i, v := range frame.Locals {
		if v.Tag == TagVoid {
			continue
		}
		fmt.Fprintf(&b, "  local[%d] = %s\n", i, valueString(v))
	}
	if frame.RetVal.Tag != TagVoid {
		fmt.Fprintf(&b, "  ret = %s\n", valueString(frame.RetVal))
	}

	nonVoidGlobals := 0
	for i, v := range vm.Globals {
		if v.Tag == TagVoid {
			continue
		}
		nonVoidGlobals++
		fmt.Fprintf(&b, "g[%d] = %s\n", i, valueString(v))
	}
	if nonVoidGlobals == 0 {
		fmt.Fprintf(&b, "g: (all void)\n")
	}

	nonVoidBufs := 0
	for i := range vm.Buffers {
		if vm.Buffers[i].Tag == BufVoid {
			continue
		}
		nonVoidBufs++
		fmt.Fprintf(&b, "buf[%d]: %s (cap=%d)\n", i, vm.Buffers[i].Tag, vm.Buffers[i].Tag.Capacity())
	}
	if nonVoidBufs == 0 {
		fmt.Fprintf(&b, "buf: (all void)\n")
	}
	return b.String()
}

func flagsString(flags uint8) string {
	var b strings.Builder
	if flags&FlagZero != 0 {
		b.WriteByte('Z')
	}
	if flags&FlagLess != 0 {
		b.WriteByte('L')
	}
	if flags&FlagGreater != 0 {
		b.WriteByte('G')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func valueString(v Value) string {
	switch v.Tag {
	case TagI32:
		return fmt.Sprintf("i32:%d", v.I32)
	case TagU32:
		return fmt.Sprintf("u32:%d", v.U32)
	case TagF32:
		return fmt.Sprintf("f32:%g", v.F32)
	case TagStackVarRef:
		return fmt.Sprintf("ref:(frame=%d,var=%d)", v.Ref.FrameIdx, v.Ref.VarIdx)
	default:
		return v.Tag.String()
	}
}
