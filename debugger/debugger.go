// Package debugger implements an interactive command and text-UI shell
// around a Stipple vm.VM: breakpoints on the program counter, single
// stepping, and the disassembler/state-dump hooks the VM exposes
// externally. It never reaches into VM internals beyond those hooks and
// the public Step/Run entry points.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stipple-vm/stipple/config"
	"github.com/stipple-vm/stipple/vm"
)

// Debugger holds the interactive session state layered on top of a VM.
type Debugger struct {
	VM *vm.VM

	Breakpoints *BreakpointManager
	History     *CommandHistory

	Running  bool
	Stepping bool

	LastCommand string

	Output strings.Builder
}

// NewDebugger creates a debugger session wrapping machine, using cfg for
// history sizing (falls back to config.DefaultConfig() behavior if cfg
// is nil).
func NewDebugger(machine *vm.VM, cfg *config.Config) *Debugger {
	historySize := 1000
	if cfg != nil {
		historySize = cfg.Debugger.HistorySize
	}
	return &Debugger{
		VM:          machine,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(historySize),
	}
}

// ExecuteCommand parses and runs a single debugger command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "run", "r":
		d.Running = true
		return nil
	case "continue", "c":
		d.Running = true
		return nil
	case "step", "s":
		return d.cmdStep()
	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdBreakTemp(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdToggle(args, true)
	case "disable":
		return d.cmdToggle(args, false)
	case "info", "i":
		return d.cmdInfo(args)
	case "disasm", "disassemble":
		return d.cmdDisasm()
	case "dump":
		d.Println(d.VM.DumpState())
		return nil
	case "reset":
		d.VM.Reset()
		d.Printf("VM reset\n")
		return nil
	case "help", "h", "?":
		return d.cmdHelp()
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

func (d *Debugger) cmdStep() error {
	status := d.VM.Step()
	d.Printf("pc=%08x status=%s\n", d.VM.PC, status)
	return nil
}

func parsePC(arg string) (uint32, error) {
	arg = strings.TrimPrefix(arg, "0x")
	v, err := strconv.ParseUint(arg, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", arg)
	}
	return uint32(v), nil
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: break <pc>")
	}
	pc, err := parsePC(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(pc, false)
	d.Printf("breakpoint %d at %08x\n", bp.ID, bp.PC)
	return nil
}

func (d *Debugger) cmdBreakTemp(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tbreak <pc>")
	}
	pc, err := parsePC(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(pc, true)
	d.Printf("temporary breakpoint %d at %08x\n", bp.ID, bp.PC)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint id: %s", args[0])
	}
	return d.Breakpoints.DeleteBreakpoint(id)
}

func (d *Debugger) cmdToggle(args []string, enable bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: enable|disable <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint id: %s", args[0])
	}
	if enable {
		return d.Breakpoints.EnableBreakpoint(id)
	}
	return d.Breakpoints.DisableBreakpoint(id)
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		d.Printf("%s", d.VM.DumpState())
		return nil
	}
	switch args[0] {
	case "breakpoints", "break":
		for _, bp := range d.Breakpoints.GetAllBreakpoints() {
			state := "enabled"
			if !bp.Enabled {
				state = "disabled"
			}
			d.Printf("%d: %08x %s (hits: %d)\n", bp.ID, bp.PC, state, bp.HitCount)
		}
	default:
		return fmt.Errorf("unknown info target: %s", args[0])
	}
	return nil
}

func (d *Debugger) cmdDisasm() error {
	d.Println(d.VM.DisassembleAt(d.VM.PC))
	return nil
}

func (d *Debugger) cmdHelp() error {
	d.Println("commands: run|r, continue|c, step|s, break|b <pc>, tbreak|tb <pc>,")
	d.Println("          delete|d <id>, enable|disable <id>, info|i [breakpoints],")
	d.Println("          disasm, dump, reset, help|h|?")
	return nil
}

// ShouldBreak reports whether execution should pause at the VM's current
// PC, and a human-readable reason if so.
func (d *Debugger) ShouldBreak() (bool, string) {
	pc := d.VM.PC

	if d.Stepping {
		d.Stepping = false
		return true, "single step"
	}

	if bp := d.Breakpoints.GetBreakpoint(pc); bp != nil && bp.Enabled {
		hit := d.Breakpoints.ProcessHit(pc)
		return true, fmt.Sprintf("breakpoint %d", hit.ID)
	}

	return false, ""
}

// GetOutput returns and clears the accumulated output buffer.
func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

// Printf writes formatted text to the output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

// Println writes a line to the output buffer.
func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}
