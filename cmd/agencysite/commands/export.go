package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/agencysite/internal/cms"
	"git.home.luguber.info/inful/agencysite/internal/config"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/logfields"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Dir   string `short:"d" help:"Target directory (defaults to cms.directory)" type:"path"`
	Force bool   `help:"Overwrite files that already exist"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	dir := e.Dir
	if dir == "" {
		dir = cfg.CMS.Directory
	}
	if cfg.CMS.Kind == config.CMSKindLocal && dir == cfg.CMS.Directory {
		return errors.ValidationError("export source and target are the same directory").
			WithContext("dir", dir).
			Build()
	}

	src, err := cms.New(cfg.CMS, nil)
	if err != nil {
		return err
	}

	slog.Info("Exporting posts", slog.String("cms", string(cfg.CMS.Kind)), slog.String("dir", dir))
	res, err := cms.Export(context.Background(), src, dir, e.Force)
	if err != nil {
		return err
	}
	slog.Info("Export complete", logfields.Count(len(res.Written)), slog.Int("skipped", len(res.Skipped)))
	_, err = fmt.Fprintf(g.out(), "exported %d posts to %s (%d skipped)\n", len(res.Written), dir, len(res.Skipped))
	return err
}
