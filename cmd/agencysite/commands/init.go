package commands

import (
	"fmt"

	"git.home.luguber.info/inful/agencysite/internal/config"
)

// DefaultConfigPath is where 'init' writes when no --config is given.
const DefaultConfigPath = "agencysite.yaml"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigPath
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, err := fmt.Fprintf(g.out(), "Wrote configuration to %s\n", path)
	return err
}
