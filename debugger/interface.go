package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/stipple-vm/stipple/vm"
)

// RunCLI runs the line-oriented command debugger on stdin/stdout.
func RunCLI(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(stipple-dbg) ")

		if !scanner.Scan() {
			break
		}

		cmdLine := strings.TrimSpace(scanner.Text())

		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		if output := dbg.GetOutput(); output != "" {
			fmt.Print(output)
		}

		if dbg.Running {
			runUntilStop(dbg)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	return nil
}

// runUntilStop single-steps the VM until a breakpoint, halt, or runtime
// error is reached, printing a summary line when it stops.
func runUntilStop(dbg *Debugger) {
	for dbg.Running {
		if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
			dbg.Running = false
			fmt.Printf("Stopped: %s at pc=%08x\n", reason, dbg.VM.PC)
			return
		}

		status := dbg.VM.Step()
		switch status {
		case vm.StatusOk:
			// keep going
		case vm.StatusHalt:
			dbg.Running = false
			fmt.Printf("Program halted at pc=%08x\n", dbg.VM.PC)
		default:
			dbg.Running = false
			fmt.Printf("Runtime error: %s at pc=%08x\n", status, dbg.VM.PC)
		}
	}
}

// RunTUI runs the interactive text-mode debugger.
func RunTUI(dbg *Debugger) error {
	tui := NewTUI(dbg)
	return tui.Run()
}
