package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/agencysite/internal/daemon"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port      int  `help:"Override the site port"`
	AdminPort int  `name:"admin-port" help:"Override the admin port"`
	Watch     bool `help:"Reload static pages when their files change"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if s.Port > 0 {
		cfg.Server.Port = s.Port
	}
	if s.AdminPort > 0 {
		cfg.Server.AdminPort = s.AdminPort
	}
	if s.Watch {
		cfg.Content.Watch = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d, err := daemon.New(ctx, cfg)
	if err != nil {
		return err
	}
	return d.Run(ctx)
}
