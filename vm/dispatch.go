package vm

// Step decodes and executes exactly one instruction at the current pc.
// On success pc advances past the instruction (or to a branch target);
// on any failure — including the internal StatusHalt sentinel — pc is
// left exactly as it was before the call, so that LastError plus PC
// together describe the faulting instruction (spec §3.5 I5/I6, §8 P2).
func (vm *VM) Step() Status {
	ins, status := decodeInstruction(vm.Program[:], vm.ProgramLen, vm.PC)
	if status != StatusOk {
		vm.LastError = status
		return status
	}
	if !ins.Opcode.IsValid() {
		vm.LastError = StatusInvalidOpcode
		return StatusInvalidOpcode
	}

	nextPC := vm.PC + ins.Size()
	status = vm.execute(&ins, &nextPC)
	vm.LastError = status
	if status == StatusOk {
		vm.PC = nextPC
	}
	return status
}

// Run steps until a terminal status. StatusHalt is translated to
// StatusOk at this boundary (spec §4.3); any other non-Ok status is
// returned as-is, with pc left at the faulting instruction.
func (vm *VM) Run() Status {
	for {
		status := vm.Step()
		switch status {
		case StatusOk:
			continue
		case StatusHalt:
			return StatusOk
		default:
			return status
		}
	}
}

// execute dispatches one decoded instruction to its opcode handler.
// nextPC is the default post-instruction pc (current pc + size); control
// flow opcodes overwrite it before returning.
func (vm *VM) execute(ins *Instruction, nextPC *uint32) Status {
	switch ins.Opcode {
	case OpNop:
		return StatusOk
	case OpHalt:
		return StatusHalt

	case OpJmp, OpJz, OpJnz, OpJlt, OpJgt, OpJle, OpJge:
		return vm.execJump(ins, nextPC)
	case OpCall:
		return vm.execCall(ins, nextPC)
	case OpRet:
		return vm.execRet(nextPC)

	case OpLoadGlobal, OpLoadLocal, OpLoadStackVar, OpLoadImmI32, OpLoadImmU32, OpLoadImmF32, OpLoadReturn:
		return vm.execLoad(ins)
	case OpStoreGlobal, OpStoreLocal, OpStoreStackVar, OpStoreReturn:
		return vm.execStore(ins)

	case OpAddI32, OpSubI32, OpMulI32, OpDivI32, OpModI32, OpNegI32,
		OpAddU32, OpSubU32, OpMulU32, OpDivU32, OpModU32:
		return vm.execIntArith(ins)
	case OpAddF32, OpSubF32, OpMulF32, OpDivF32, OpNegF32, OpAbsF32, OpSqrtF32:
		return vm.execFloatArith(ins)
	case OpAndU32, OpOrU32, OpXorU32, OpNotU32, OpShlU32, OpShrU32:
		return vm.execBitwise(ins)
	case OpI32ToU32, OpU32ToI32, OpI32ToF32, OpU32ToF32, OpF32ToI32, OpF32ToU32:
		return vm.execConvert(ins)

	case OpCmpI32, OpCmpU32, OpCmpF32:
		return vm.execCompare(ins)

	case OpBufRead, OpBufWrite, OpBufLen, OpBufClear:
		return vm.execBuffer(ins)
	case OpStrCat, OpStrCopy, OpStrLen, OpStrCmp, OpStrChr, OpStrSetChr:
		return vm.execString(ins)

	case OpPrintI32, OpPrintU32, OpPrintF32, OpPrintStr, OpPrintln,
		OpReadI32, OpReadU32, OpReadF32, OpReadStr:
		return vm.execIO(ins)

	default:
		return StatusInvalidOpcode
	}
}
