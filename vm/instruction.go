package vm

import (
	"encoding/binary"
	"math"
)

// ImmType names how a 4-byte payload word is to be read. Tag
// interpretation is semantic-only: decoding never validates that the
// typed value is in range — each opcode performs its own range check
// (spec §4.1).
type ImmType uint8

const (
	ImmNone ImmType = iota
	ImmU8Quad
	ImmU16Pair
	ImmU32
	ImmI32
	ImmF32
	ImmStackVarRef
	ImmGlobalRef
	ImmBufferRef
	ImmBufferPos
)

// InstructionHeaderSize is the fixed 4-byte instruction header.
const InstructionHeaderSize = 4

// MaxPayloadWords bounds payload_len; more than this is InvalidInstruction.
const MaxPayloadWords = 3

// Instruction is a decoded instruction: header fields plus up to three
// typed payload words copied bit-for-bit from the program image.
type Instruction struct {
	Opcode     Opcode
	Operand    uint8
	PayloadLen uint8
	ImmTypes   [MaxPayloadWords]ImmType
	Payload    [MaxPayloadWords]uint32 // raw little-endian words, reinterpreted per ImmTypes
}

// Size returns the instruction's length in bytes: 4 + 4*payload_len.
func (ins *Instruction) Size() uint32 {
	return InstructionHeaderSize + uint32(ins.PayloadLen)*4
}

// payloadLenFromFlags / imm-type accessors mirror the reference's
// hand-packed byte header (flags = payload_len | imm_type1<<4,
// types = imm_type2 | imm_type3<<4), chosen over bitfields for
// portability per spec §9.
func payloadLenFromFlags(flags uint8) uint8 { return flags & 0x0F }
func immType1FromFlags(flags uint8) ImmType { return ImmType((flags >> 4) & 0x0F) }
func immType2FromTypes(types uint8) ImmType { return ImmType(types & 0x0F) }
func immType3FromTypes(types uint8) ImmType { return ImmType((types >> 4) & 0x0F) }

func packFlags(payloadLen uint8, imm1 ImmType) uint8 {
	return (payloadLen & 0x0F) | (uint8(imm1&0x0F) << 4)
}

func packTypes(imm2, imm3 ImmType) uint8 {
	return uint8(imm2&0x0F) | (uint8(imm3&0x0F) << 4)
}

// EncodeInstruction renders ins back into its 4+4*n byte wire form. It is
// the decoder's inverse and is used by tests and by any host-side tool
// assembling a raw program; the VM core itself only ever decodes.
func EncodeInstruction(ins *Instruction) []byte {
	out := make([]byte, ins.Size())
	out[0] = uint8(ins.Opcode)
	out[1] = ins.Operand
	out[2] = packFlags(ins.PayloadLen, ins.ImmTypes[0])
	out[3] = packTypes(ins.ImmTypes[1], ins.ImmTypes[2])
	for i := uint8(0); i < ins.PayloadLen; i++ {
		binary.LittleEndian.PutUint32(out[4+i*4:8+i*4], ins.Payload[i])
	}
	return out
}

// decodeInstruction reads one instruction starting at byte offset pc in
// program[:programLen]. It rejects payload_len > 3 and an instruction
// that would straddle the program end as StatusInvalidInstruction; it
// does not range-check the opcode itself (that is Status InvalidOpcode,
// raised by the dispatcher) nor any immediate's typed value.
func decodeInstruction(program []byte, programLen uint32, pc uint32) (Instruction, Status) {
	var ins Instruction
	if pc+InstructionHeaderSize > programLen {
		return ins, StatusInvalidInstruction
	}
	header := program[pc : pc+InstructionHeaderSize]
	ins.Opcode = Opcode(header[0])
	ins.Operand = header[1]
	flags := header[2]
	types := header[3]

	payloadLen := payloadLenFromFlags(flags)
	if payloadLen > MaxPayloadWords {
		return ins, StatusInvalidInstruction
	}
	ins.PayloadLen = payloadLen
	ins.ImmTypes[0] = immType1FromFlags(flags)
	ins.ImmTypes[1] = immType2FromTypes(types)
	ins.ImmTypes[2] = immType3FromTypes(types)

	size := InstructionHeaderSize + uint32(payloadLen)*4
	if pc+size > programLen {
		return ins, StatusInvalidInstruction
	}
	for i := uint8(0); i < payloadLen; i++ {
		off := pc + InstructionHeaderSize + uint32(i)*4
		ins.Payload[i] = binary.LittleEndian.Uint32(program[off : off+4])
	}
	return ins, StatusOk
}

// payloadI32 / payloadF32 reinterpret payload word i as the matching
// type; callers choose the accessor appropriate to the opcode, matching
// the reference's union-typed instruction_payload_t.
func (ins *Instruction) payloadI32(i int) int32   { return int32(ins.Payload[i]) }
func (ins *Instruction) payloadF32(i int) float32 { return math.Float32frombits(ins.Payload[i]) }
