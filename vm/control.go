package vm

// execJump handles Jmp and the six conditional branches (spec §4.4).
// The target is validated only when the branch is actually taken.
func (vm *VM) execJump(ins *Instruction, nextPC *uint32) Status {
	taken := false
	switch ins.Opcode {
	case OpJmp:
		taken = true
	case OpJz:
		taken = vm.Flags&FlagZero != 0
	case OpJnz:
		taken = vm.Flags&FlagZero == 0
	case OpJlt:
		taken = vm.Flags&FlagLess != 0
	case OpJgt:
		taken = vm.Flags&FlagGreater != 0
	case OpJle:
		taken = vm.Flags&(FlagLess|FlagZero) != 0
	case OpJge:
		taken = vm.Flags&(FlagGreater|FlagZero) != 0
	}
	if !taken {
		return StatusOk
	}
	target := ins.Payload[0]
	if target >= vm.ProgramLen {
		return StatusInvalidPC
	}
	*nextPC = target
	return StatusOk
}

// execCall pushes a new frame: the fall-through pc is recorded as the
// new frame's return address, locals are cleared to Void, and
// stack-vars / return-value are left untouched so the caller can use
// them to pass arguments (spec §4.4).
func (vm *VM) execCall(ins *Instruction, nextPC *uint32) Status {
	if vm.SP == FrameDepth-1 {
		return StatusStackOverflow
	}
	target := ins.Payload[0]
	if target >= vm.ProgramLen {
		return StatusInvalidPC
	}
	vm.Frames[vm.SP+1].ReturnPC = *nextPC
	vm.SP++
	vm.CurrentFrame().clearLocals()
	*nextPC = target
	return StatusOk
}

// execRet pops the current frame, resuming at its recorded return
// address (spec §4.4).
func (vm *VM) execRet(nextPC *uint32) Status {
	if vm.SP == 0 {
		return StatusStackUnderflow
	}
	*nextPC = vm.CurrentFrame().ReturnPC
	vm.SP--
	return StatusOk
}
