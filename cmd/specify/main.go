// specify is a CLI for bootstrapping Spec-Driven Development projects.
package main

import "github.com/fractionestate/specify/cmd"

func main() {
	cmd.Execute()
}
