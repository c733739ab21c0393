package debugger

// DisassemblyWindowSize is the number of instructions shown in the TUI's
// disassembly pane, starting at the current PC.
const DisassemblyWindowSize = 16
