package vm

// unpackStackVarRef splits a packed payload word into its (frame_idx,
// var_idx) halves: frame_idx occupies the low 16 bits, var_idx the high
// 16 bits, matching the reference's stack_var_ref_t struct layout.
func unpackStackVarRef(word uint32) (frameIdx, varIdx uint32) {
	return word & 0xFFFF, word >> 16
}

// execLoad implements LoadGlobal/LoadLocal/LoadStackVar/LoadImmediate*/
// LoadReturn (spec §4.5). Load/Store are type-transparent copies except
// LoadImmediate, which dictates the resulting tag.
func (vm *VM) execLoad(ins *Instruction) Status {
	dest, status := vm.stackVar(ins.Operand)
	if status != StatusOk {
		return status
	}

	switch ins.Opcode {
	case OpLoadGlobal:
		src, status := vm.global(ins.Payload[0])
		if status != StatusOk {
			return status
		}
		*dest = *src
	case OpLoadLocal:
		src, status := vm.local(ins.Payload[0])
		if status != StatusOk {
			return status
		}
		*dest = *src
	case OpLoadStackVar:
		frameIdx, varIdx := unpackStackVarRef(ins.Payload[0])
		src, status := vm.frameStackVar(frameIdx, varIdx)
		if status != StatusOk {
			return status
		}
		*dest = *src
	case OpLoadImmI32:
		*dest = I32Value(ins.payloadI32(0))
	case OpLoadImmU32:
		*dest = U32Value(ins.Payload[0])
	case OpLoadImmF32:
		*dest = F32Value(ins.payloadF32(0))
	case OpLoadReturn:
		frameIdx := ins.Payload[0]
		if frameIdx >= FrameDepth {
			return StatusInvalidStackVarIdx
		}
		*dest = vm.Frames[frameIdx].RetVal
	}
	return StatusOk
}

// execStore implements the mirror-image Store* opcodes (spec §4.5).
func (vm *VM) execStore(ins *Instruction) Status {
	src, status := vm.stackVar(ins.Operand)
	if status != StatusOk {
		return status
	}

	switch ins.Opcode {
	case OpStoreGlobal:
		dest, status := vm.global(ins.Payload[0])
		if status != StatusOk {
			return status
		}
		*dest = *src
	case OpStoreLocal:
		dest, status := vm.local(ins.Payload[0])
		if status != StatusOk {
			return status
		}
		*dest = *src
	case OpStoreStackVar:
		frameIdx, varIdx := unpackStackVarRef(ins.Payload[0])
		dest, status := vm.frameStackVar(frameIdx, varIdx)
		if status != StatusOk {
			return status
		}
		*dest = *src
	case OpStoreReturn:
		frameIdx := ins.Payload[0]
		if frameIdx >= FrameDepth {
			return StatusInvalidStackVarIdx
		}
		vm.Frames[frameIdx].RetVal = *src
	}
	return StatusOk
}
