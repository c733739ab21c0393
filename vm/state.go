package vm

import (
	"bufio"
	"io"
	"os"
)

// Global capacities (spec §3.4).
const (
	GlobalCount    = 256
	BufferCount    = 256
	ProgramMaxSize = 65536
)

// Condition flag bits (spec §4.7, §3.4).
const (
	FlagZero    uint8 = 0x01
	FlagLess    uint8 = 0x02
	FlagGreater uint8 = 0x04
)

// VM is the complete, fixed-size state container. It owns every byte of
// its storage; nothing it touches is heap-grown after construction
// (spec §5's resource budget). The zero value is not ready to run —
// use New or call Init.
type VM struct {
	Globals [GlobalCount]Value
	Buffers [BufferCount]Buffer
	Frames  [FrameDepth]Frame

	Program    [ProgramMaxSize]byte
	ProgramLen uint32
	PC         uint32
	SP         uint8

	Flags     uint8
	LastError Status

	// Output is where Print* opcodes write, so tests and the TUI can
	// capture VM output without touching os.Stdout.
	Output io.Writer

	// stdin is a per-VM buffered reader so that multiple VM instances
	// never share read position.
	stdin *bufio.Reader
}

// New constructs a freshly initialized VM.
func New() *VM {
	vm := &VM{}
	vm.Init()
	return vm
}

// Init zeroes the container and sets every tag to Void, pc = sp = 0,
// flags = 0, last_error = Ok (spec §3.6, §6).
func (vm *VM) Init() {
	*vm = VM{}
	for i := range vm.Globals {
		vm.Globals[i] = VoidValue()
	}
	for i := range vm.Frames {
		vm.Frames[i].reset()
	}
	vm.Output = os.Stdout
	vm.stdin = bufio.NewReader(os.Stdin)
}

// Reset is a synonym for Init (spec §6).
func (vm *VM) Reset() {
	vm.Init()
}

// SetOutput redirects Print* output; used by the debugger TUI and tests.
func (vm *VM) SetOutput(w io.Writer) {
	vm.Output = w
}

// SetInput redirects Read* input; used by tests to feed scripted stdin.
func (vm *VM) SetInput(r io.Reader) {
	vm.stdin = bufio.NewReader(r)
}

// LoadProgram copies program into instruction memory, sets program_len,
// and resets pc to 0. sp, globals, buffers and frames are left
// unchanged (spec §3.6, §6): a program may assume fresh storage only
// after an explicit Init.
func (vm *VM) LoadProgram(program []byte) Status {
	if len(program) > ProgramMaxSize {
		return StatusProgramTooLarge
	}
	var buf [ProgramMaxSize]byte
	copy(buf[:], program)
	vm.Program = buf
	vm.ProgramLen = uint32(len(program))
	vm.PC = 0
	return StatusOk
}

// CurrentFrame returns the frame sp currently names.
func (vm *VM) CurrentFrame() *Frame {
	return &vm.Frames[vm.SP]
}

// stackVar returns the current frame's stack-var at idx, validating the
// 0..15 range (spec §4.5).
func (vm *VM) stackVar(idx uint8) (*Value, Status) {
	if int(idx) >= StackVarCount {
		return nil, StatusInvalidStackVarIdx
	}
	return &vm.CurrentFrame().StackVars[idx], StatusOk
}

func (vm *VM) global(idx uint32) (*Value, Status) {
	if idx >= GlobalCount {
		return nil, StatusInvalidGlobalIdx
	}
	return &vm.Globals[idx], StatusOk
}

func (vm *VM) local(idx uint32) (*Value, Status) {
	if idx >= LocalCount {
		return nil, StatusInvalidLocalIdx
	}
	return &vm.CurrentFrame().Locals[idx], StatusOk
}

// frameStackVar addresses (frame_idx, var_idx) in any frame, the only
// cross-frame data channel besides the return-value slot (spec §9).
func (vm *VM) frameStackVar(frameIdx, varIdx uint32) (*Value, Status) {
	if frameIdx >= FrameDepth {
		return nil, StatusInvalidStackVarIdx
	}
	if varIdx >= StackVarCount {
		return nil, StatusInvalidStackVarIdx
	}
	return &vm.Frames[frameIdx].StackVars[varIdx], StatusOk
}

func (vm *VM) buffer(idx uint32) (*Buffer, Status) {
	if idx >= BufferCount {
		return nil, StatusInvalidBufferIdx
	}
	return &vm.Buffers[idx], StatusOk
}
