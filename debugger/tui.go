package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the interactive text-mode debugger shell, built from the same
// disassembler/state-dump hooks the CLI uses.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout *tview.Flex

	DisassemblyView *tview.TextView
	StateView       *tview.TextView
	BuffersView     *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField
}

// NewTUI builds the TUI around an existing debugger session.
func NewTUI(debugger *Debugger) *TUI {
	t := &TUI{
		Debugger: debugger,
		App:      tview.NewApplication(),
	}

	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()

	return t
}

func (t *TUI) initializeViews() {
	t.DisassemblyView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.StateView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.StateView.SetBorder(true).SetTitle(" State ")

	t.BuffersView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BuffersView.SetBorder(true).SetTitle(" Buffers ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	rightTop := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.StateView, 0, 2, false).
		AddItem(t.BuffersView, 0, 1, false)

	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(rightTop, 0, 3, false).
		AddItem(t.BreakpointsView, 8, 0, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.DisassemblyView, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF9:
			t.executeCommand("break")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		if cmd != "" {
			t.executeCommand(cmd)
			t.CommandInput.SetText("")
		}
	}
}

func (t *TUI) executeCommand(cmd string) {
	t.Debugger.Output.Reset()

	err := t.Debugger.ExecuteCommand(cmd)
	if t.Debugger.Running {
		runUntilStop(t.Debugger)
	}
	output := t.Debugger.GetOutput()

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}

	t.RefreshAll()
}

// WriteOutput appends text to the output pane and scrolls to the end.
func (t *TUI) WriteOutput(text string) {
	fmt.Fprint(t.OutputView, text)
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every pane from current VM state.
func (t *TUI) RefreshAll() {
	t.updateDisassemblyView()
	t.updateStateView()
	t.updateBuffersView()
	t.updateBreakpointsView()
	t.App.Draw()
}

func (t *TUI) updateDisassemblyView() {
	machine := t.Debugger.VM
	pc := machine.PC

	var lines []string
	addr := pc
	for i := 0; i < DisassemblyWindowSize && addr < machine.ProgramLen; i++ {
		marker := "  "
		color := "white"
		if addr == pc {
			marker, color = "->", "yellow"
		}
		if t.Debugger.Breakpoints.GetBreakpoint(addr) != nil {
			marker = "* "
		}
		line := machine.DisassembleAt(addr)
		lines = append(lines, fmt.Sprintf("[%s]%s %s[white]", color, marker, line))
		// Instruction size is 4 + 4*payload_len; payload_len is the low
		// nibble of header byte 2.
		size := uint32(4)
		if addr+2 < machine.ProgramLen {
			size += 4 * uint32(machine.Program[addr+2]&0x0F)
		}
		addr += size
	}
	t.DisassemblyView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateStateView() {
	t.StateView.SetText(t.Debugger.VM.DumpState())
}

func (t *TUI) updateBuffersView() {
	machine := t.Debugger.VM
	var lines []string
	for i := range machine.Buffers {
		if machine.Buffers[i].Tag == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("buf[%d]: %s", i, machine.Buffers[i].Tag))
	}
	if len(lines) == 0 {
		lines = append(lines, "(no buffers allocated)")
	}
	t.BuffersView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) updateBreakpointsView() {
	var lines []string
	bps := t.Debugger.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		lines = append(lines, "[yellow]No breakpoints set[white]")
	}
	for _, bp := range bps {
		status, color := "enabled", "green"
		if !bp.Enabled {
			status, color = "disabled", "red"
		}
		lines = append(lines, fmt.Sprintf("  %d: [%s]%s[white] %08x (hits: %d)", bp.ID, color, status, bp.PC, bp.HitCount))
	}
	t.BreakpointsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.WriteOutput("[green]Stipple VM Debugger[white]\n")
	t.WriteOutput("Press F1 for help, F5 to continue, F11 to step\n")
	t.WriteOutput("Type 'help' for command list\n\n")

	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

// Stop halts the TUI event loop.
func (t *TUI) Stop() {
	t.App.Stop()
}
