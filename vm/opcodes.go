package vm

// Opcode identifies the operation an instruction header selects. Numeric
// values are fixed by the Stipple reference implementation so that
// wire-format programs produced by any conforming toolchain decode the
// same way here.
type Opcode uint8

const (
	OpNop  Opcode = 0x00
	OpHalt Opcode = 0x01
	OpJmp  Opcode = 0x02
	OpJz   Opcode = 0x03
	OpJnz  Opcode = 0x04
	OpJlt  Opcode = 0x05
	OpJgt  Opcode = 0x06
	OpJle  Opcode = 0x07
	OpJge  Opcode = 0x08
	OpCall Opcode = 0x09
	OpRet  Opcode = 0x0A

	OpLoadGlobal    Opcode = 0x10
	OpLoadLocal     Opcode = 0x11
	OpLoadStackVar  Opcode = 0x12
	OpLoadImmI32    Opcode = 0x13
	OpLoadImmU32    Opcode = 0x14
	OpLoadImmF32    Opcode = 0x15
	OpLoadReturn    Opcode = 0x16

	OpStoreGlobal   Opcode = 0x20
	OpStoreLocal    Opcode = 0x21
	OpStoreStackVar Opcode = 0x22
	OpStoreReturn   Opcode = 0x23

	OpAddI32 Opcode = 0x30
	OpSubI32 Opcode = 0x31
	OpMulI32 Opcode = 0x32
	OpDivI32 Opcode = 0x33
	OpModI32 Opcode = 0x34
	OpNegI32 Opcode = 0x35
	OpAddU32 Opcode = 0x36
	OpSubU32 Opcode = 0x37
	OpMulU32 Opcode = 0x38
	OpDivU32 Opcode = 0x39
	OpModU32 Opcode = 0x3A

	OpAddF32  Opcode = 0x40
	OpSubF32  Opcode = 0x41
	OpMulF32  Opcode = 0x42
	OpDivF32  Opcode = 0x43
	OpNegF32  Opcode = 0x44
	OpAbsF32  Opcode = 0x45
	OpSqrtF32 Opcode = 0x46

	OpAndU32 Opcode = 0x50
	OpOrU32  Opcode = 0x51
	OpXorU32 Opcode = 0x52
	OpNotU32 Opcode = 0x53
	OpShlU32 Opcode = 0x54
	OpShrU32 Opcode = 0x55

	OpCmpI32 Opcode = 0x60
	OpCmpU32 Opcode = 0x61
	OpCmpF32 Opcode = 0x62

	OpI32ToU32 Opcode = 0x70
	OpU32ToI32 Opcode = 0x71
	OpI32ToF32 Opcode = 0x72
	OpU32ToF32 Opcode = 0x73
	OpF32ToI32 Opcode = 0x74
	OpF32ToU32 Opcode = 0x75

	OpBufRead  Opcode = 0x80
	OpBufWrite Opcode = 0x81
	OpBufLen   Opcode = 0x82
	OpBufClear Opcode = 0x83

	OpStrCat    Opcode = 0x90
	OpStrCopy   Opcode = 0x91
	OpStrLen    Opcode = 0x92
	OpStrCmp    Opcode = 0x93
	OpStrChr    Opcode = 0x94
	OpStrSetChr Opcode = 0x95

	OpPrintI32 Opcode = 0xA0
	OpPrintU32 Opcode = 0xA1
	OpPrintF32 Opcode = 0xA2
	OpPrintStr Opcode = 0xA3
	OpPrintln  Opcode = 0xA4
	OpReadI32  Opcode = 0xA5
	OpReadU32  Opcode = 0xA6
	OpReadF32  Opcode = 0xA7
	OpReadStr  Opcode = 0xA8

	// OpMax is one past the last valid opcode; decoding an opcode >= OpMax
	// yields StatusInvalidOpcode.
	OpMax Opcode = 0xA9
)

var opcodeNames = map[Opcode]string{
	OpNop: "nop", OpHalt: "halt", OpJmp: "jmp", OpJz: "jz", OpJnz: "jnz",
	OpJlt: "jlt", OpJgt: "jgt", OpJle: "jle", OpJge: "jge", OpCall: "call", OpRet: "ret",

	OpLoadGlobal: "load.g", OpLoadLocal: "load.l", OpLoadStackVar: "load.s",
	OpLoadImmI32: "load.i.i32", OpLoadImmU32: "load.i.u32", OpLoadImmF32: "load.i.f32",
	OpLoadReturn: "load.ret",

	OpStoreGlobal: "store.g", OpStoreLocal: "store.l", OpStoreStackVar: "store.s",
	OpStoreReturn: "store.ret",

	OpAddI32: "add.i32", OpSubI32: "sub.i32", OpMulI32: "mul.i32", OpDivI32: "div.i32",
	OpModI32: "mod.i32", OpNegI32: "neg.i32",
	OpAddU32: "add.u32", OpSubU32: "sub.u32", OpMulU32: "mul.u32", OpDivU32: "div.u32",
	OpModU32: "mod.u32",

	OpAddF32: "add.f32", OpSubF32: "sub.f32", OpMulF32: "mul.f32", OpDivF32: "div.f32",
	OpNegF32: "neg.f32", OpAbsF32: "abs.f32", OpSqrtF32: "sqrt.f32",

	OpAndU32: "and.u32", OpOrU32: "or.u32", OpXorU32: "xor.u32", OpNotU32: "not.u32",
	OpShlU32: "shl.u32", OpShrU32: "shr.u32",

	OpCmpI32: "cmp.i32", OpCmpU32: "cmp.u32", OpCmpF32: "cmp.f32",

	OpI32ToU32: "i32.to.u32", OpU32ToI32: "u32.to.i32", OpI32ToF32: "i32.to.f32",
	OpU32ToF32: "u32.to.f32", OpF32ToI32: "f32.to.i32", OpF32ToU32: "f32.to.u32",

	OpBufRead: "buf.read", OpBufWrite: "buf.write", OpBufLen: "buf.len", OpBufClear: "buf.clear",

	OpStrCat: "str.cat", OpStrCopy: "str.copy", OpStrLen: "str.len", OpStrCmp: "str.cmp",
	OpStrChr: "str.chr", OpStrSetChr: "str.setchr",

	OpPrintI32: "print.i32", OpPrintU32: "print.u32", OpPrintF32: "print.f32",
	OpPrintStr: "print.str", OpPrintln: "println",
	OpReadI32: "read.i32", OpReadU32: "read.u32", OpReadF32: "read.f32", OpReadStr: "read.str",
}

// String returns the mnemonic used by the disassembler; unknown opcodes
// render as "???" rather than panicking.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "???"
}

// IsValid reports whether o is a defined opcode.
func (o Opcode) IsValid() bool {
	_, ok := opcodeNames[o]
	return ok
}
