package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/google/renameio/v2"
)

type InitCmd struct {
	Output          string `short:"o" default:"config.yaml" type:"path" help:"File to write"`
	GenerateSecrets bool   `help:"Replace the jwt and session secret placeholders with random values"`
	Force           bool   `help:"Overwrite the file if it exists"`
}

func (c *InitCmd) Run(rc *runContext) error {
	if _, err := os.Stat(c.Output); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", c.Output)
	}
	document := config.Template()
	if c.GenerateSecrets {
		filled, err := config.FillSecrets(document, rand.Reader)
		if err != nil {
			return err
		}
		document = filled
	}
	// the file holds secrets so only the owner may read it
	err := renameio.WriteFile(c.Output, document, 0o600)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", c.Output, err)
	}
	fmt.Fprintf(rc.stdout, "wrote %s, replace the remaining PLACEHOLDER_ values before deploying\n", c.Output)
	return nil
}

type TemplateCmd struct{}

func (c *TemplateCmd) Run(rc *runContext) error {
	_, err := rc.stdout.Write(config.Template())
	return err
}
