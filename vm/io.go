package vm

import (
	"fmt"
	"io"
)

// execIO implements the standard I/O opcodes (spec §4.9). All I/O is
// blocking from the core's perspective; output goes through vm.Output
// and input through vm.stdin so hosts and tests can redirect both.
func (vm *VM) execIO(ins *Instruction) Status {
	switch ins.Opcode {
	case OpPrintI32:
		src, status := vm.srcStackVar(ins, 0)
		if status != StatusOk {
			return status
		}
		if src.Tag != TagI32 {
			return StatusTypeMismatch
		}
		fmt.Fprintf(vm.Output, "%d", src.I32)
	case OpPrintU32:
		src, status := vm.srcStackVar(ins, 0)
		if status != StatusOk {
			return status
		}
		if src.Tag != TagU32 {
			return StatusTypeMismatch
		}
		fmt.Fprintf(vm.Output, "%d", src.U32)
	case OpPrintF32:
		src, status := vm.srcStackVar(ins, 0)
		if status != StatusOk {
			return status
		}
		if src.Tag != TagF32 {
			return StatusTypeMismatch
		}
		fmt.Fprintf(vm.Output, "%g", src.F32)
	case OpPrintStr:
		buf, status := vm.buffer(ins.Payload[0])
		if status != StatusOk {
			return status
		}
		if buf.Tag != BufU8 {
			return StatusTypeMismatch
		}
		n := stringLen(buf)
		vm.Output.Write(buf.Bytes()[:n])
	case OpPrintln:
		fmt.Fprint(vm.Output, "\n")
	case OpReadI32:
		return vm.execReadI32(ins)
	case OpReadU32:
		return vm.execReadU32(ins)
	case OpReadF32:
		return vm.execReadF32(ins)
	case OpReadStr:
		return vm.execReadStr(ins)
	}
	return StatusOk
}

// discardLine consumes input up to and including the next newline (or
// EOF), matching the reference's getchar loop on a parse failure.
func (vm *VM) discardLine() {
	for {
		b, err := vm.stdin.ReadByte()
		if err != nil || b == '\n' {
			return
		}
	}
}

func (vm *VM) execReadI32(ins *Instruction) Status {
	dest, status := vm.stackVar(ins.Operand)
	if status != StatusOk {
		return status
	}
	var value int32
	n, err := fmt.Fscan(vm.stdin, &value)
	if err != nil || n != 1 {
		if err != io.EOF {
			vm.discardLine()
		}
		*dest = I32Value(0)
		return StatusOk
	}
	*dest = I32Value(value)
	return StatusOk
}

func (vm *VM) execReadU32(ins *Instruction) Status {
	dest, status := vm.stackVar(ins.Operand)
	if status != StatusOk {
		return status
	}
	var value uint32
	n, err := fmt.Fscan(vm.stdin, &value)
	if err != nil || n != 1 {
		if err != io.EOF {
			vm.discardLine()
		}
		*dest = U32Value(0)
		return StatusOk
	}
	*dest = U32Value(value)
	return StatusOk
}

func (vm *VM) execReadF32(ins *Instruction) Status {
	dest, status := vm.stackVar(ins.Operand)
	if status != StatusOk {
		return status
	}
	var value float32
	n, err := fmt.Fscan(vm.stdin, &value)
	if err != nil || n != 1 {
		if err != io.EOF {
			vm.discardLine()
		}
		*dest = F32Value(0)
		return StatusOk
	}
	*dest = F32Value(value)
	return StatusOk
}

// execReadStr fills a U8 buffer with bytes up to (but excluding) the
// first newline or EOF, null-terminates, and forces the buffer's tag to
// U8. Read bytes are capped at 255 to leave room for the terminator
// (spec §4.9).
func (vm *VM) execReadStr(ins *Instruction) Status {
	buf, status := vm.buffer(ins.Payload[0])
	if status != StatusOk {
		return status
	}
	buf.Tag = BufU8
	bytes := buf.Bytes()

	i := 0
	for i < bufferPayloadSize-1 {
		b, err := vm.stdin.ReadByte()
		if err != nil || b == '\n' {
			break
		}
		bytes[i] = b
		i++
	}
	bytes[i] = 0
	return StatusOk
}
