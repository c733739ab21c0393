package vm

import "fmt"

// ValueTag is the discriminant of a tagged Value. Void is the
// uninitialized/unused marker and is distinct from any numeric zero.
type ValueTag uint8

const (
	TagVoid ValueTag = iota
	TagI32
	TagU32
	TagF32
	TagU8x4
	TagU16x2
	TagUnicodeCodepoint
	TagGlobalRef
	TagStackVarRef
	TagBufferRef
	TagBufferPos
)

func (t ValueTag) String() string {
	switch t {
	case TagVoid:
		return "void"
	case TagI32:
		return "i32"
	case TagU32:
		return "u32"
	case TagF32:
		return "f32"
	case TagU8x4:
		return "u8x4"
	case TagU16x2:
		return "u16x2"
	case TagUnicodeCodepoint:
		return "codepoint"
	case TagGlobalRef:
		return "global_ref"
	case TagStackVarRef:
		return "stack_var_ref"
	case TagBufferRef:
		return "buffer_ref"
	case TagBufferPos:
		return "buffer_pos"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// StackVarRef addresses a stack-var slot in another frame: (frame_idx, var_idx).
type StackVarRef struct {
	FrameIdx uint16
	VarIdx   uint16
}

// Value is a tagged variant. Exactly one field is meaningful for a given
// Tag; the zero Value is {Tag: TagVoid} and must not participate in
// arithmetic, comparison, print, or conversion.
type Value struct {
	Tag ValueTag

	I32 int32
	U32 uint32
	F32 float32
	U8  [4]uint8
	U16 [2]uint16
	Ref StackVarRef
}

// VoidValue returns the zero Value.
func VoidValue() Value {
	return Value{Tag: TagVoid}
}

// I32Value builds a TagI32 value.
func I32Value(v int32) Value {
	return Value{Tag: TagI32, I32: v}
}

// U32Value builds a TagU32 value.
func U32Value(v uint32) Value {
	return Value{Tag: TagU32, U32: v}
}

// F32Value builds a TagF32 value.
func F32Value(v float32) Value {
	return Value{Tag: TagF32, F32: v}
}
