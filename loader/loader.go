// Package loader reads a Stipple bytecode image from the host filesystem
// and loads it into a VM. It is the external collaborator named in
// spec §1/§6: the core only ever consumes an in-memory byte slice, never
// a file path.
package loader

import (
	"fmt"
	"os"

	"github.com/stipple-vm/stipple/vm"
)

// LoadFile reads path and loads its raw contents as a Stipple bytecode
// image into machine. The file format is exactly what spec §6 describes:
// a contiguous byte image with no header, checksum, version, or symbol
// table — entry point is always byte 0.
func LoadFile(machine *vm.VM, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loader: reading %s: %w", path, err)
	}
	status := machine.LoadProgram(data)
	if status != vm.StatusOk {
		return fmt.Errorf("loader: loading %s: %s", path, status)
	}
	return nil
}
