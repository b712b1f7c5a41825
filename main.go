package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lrousseau/montage/internal/app"
	"github.com/lrousseau/montage/internal/clips"
	"github.com/lrousseau/montage/internal/config"
	"github.com/lrousseau/montage/internal/errmsg"
	"github.com/lrousseau/montage/internal/logging"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpConfigLoad, err))
	}

	closeLog, err := logging.Setup()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	defer func() {
		_ = closeLog()
	}()

	registry, err := clips.Open()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	defer func() {
		_ = registry.Close()
	}()

	m := app.New(cfg, registry)
	log.Info("starting", "clips", registry.Len())

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
