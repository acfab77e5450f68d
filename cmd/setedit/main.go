// Setedit lets an operator edit the settings of a device over a serial
// console. The settings are declared in a YAML schema file and kept in a
// database file between sessions.
package main

import (
	"os"

	"github.com/humidscope/setedit/pkg/prog"
)

func main() {
	os.Exit(prog.Run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args))
}
