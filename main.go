package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stipple-vm/stipple/config"
	"github.com/stipple-vm/stipple/debugger"
	"github.com/stipple-vm/stipple/loader"
	"github.com/stipple-vm/stipple/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		debugMode   = flag.Bool("debug", false, "Start in debugger mode")
		tuiMode     = flag.Bool("tui", false, "Use TUI (Text User Interface) debugger")
		maxCycles   = flag.Uint64("max-cycles", 0, "Maximum instructions before halting (0 = use config default)")
		configPath  = flag.String("config", "", "Path to a stipple.toml config file (default: platform config dir)")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("Stipple VM %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		if *showHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	bytecodeFile := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cycleLimit := cfg.Execution.MaxCycles
	if *maxCycles > 0 {
		cycleLimit = *maxCycles
	}

	machine := vm.New()
	if err := loader.LoadFile(machine, bytecodeFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Loaded %s (%d bytes), max_cycles=%d\n", bytecodeFile, machine.ProgramLen, cycleLimit)
	}

	if *debugMode || *tuiMode {
		dbg := debugger.NewDebugger(machine, cfg)

		if *tuiMode {
			if err := debugger.RunTUI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		fmt.Println("Stipple VM Debugger - Type 'help' for commands")
		fmt.Printf("Program loaded: %s\n", bytecodeFile)
		fmt.Println()

		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runToCompletion(machine, cycleLimit, *verboseMode))
}

// runToCompletion drives Step in a host-imposed counting loop (spec §5:
// the core itself never bounds execution — a host that wants a bound
// must interpose one around Step).
func runToCompletion(machine *vm.VM, cycleLimit uint64, verbose bool) int {
	var cycles uint64
	for {
		status := machine.Step()
		cycles++

		switch status {
		case vm.StatusOk:
			if cycleLimit > 0 && cycles >= cycleLimit {
				fmt.Fprintf(os.Stderr, "Error: exceeded max-cycles (%d)\n", cycleLimit)
				return 1
			}
		case vm.StatusHalt:
			if verbose {
				fmt.Printf("Halted after %d instructions\n", cycles)
			}
			return 0
		default:
			fmt.Fprintf(os.Stderr, "Runtime error at pc=%08x: %s\n", machine.PC, status)
			return 1
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func printHelp() {
	fmt.Printf(`Stipple VM %s

Usage: stipple [options] <bytecode-file>

Options:
  -help              Show this help message
  -version           Show version information
  -debug             Start in debugger mode (CLI)
  -tui               Start in TUI debugger mode
  -max-cycles N      Override the configured instruction budget (0 = use config)
  -config FILE       Path to a stipple.toml config file
  -verbose           Enable verbose output

Examples:
  stipple program.bc
  stipple -debug program.bc
  stipple -tui program.bc
  stipple -max-cycles 500000 program.bc

Debugger Commands (when in -debug mode):
  run, r             Resume execution
  continue, c        Continue execution
  step, s            Execute single instruction
  break ADDR         Set breakpoint at a byte offset (hex, e.g. 0x10)
  delete ID          Delete a breakpoint
  info breakpoints   List breakpoints
  disasm             Disassemble at the current pc
  dump               Print VM state (current frame, globals, buffer tags)
  help               Show debugger help

For more information, see DESIGN.md.
`, Version)
}
