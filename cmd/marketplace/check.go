package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/db"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/mperrors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const probeTimeout time.Duration = 5 * time.Second

type CheckCmd struct {
	Probe bool `help:"Also check that the database and redis servers are reachable"`
}

type checkOutput struct {
	config.Report
	Files  []string                               `json:"files"`
	Probes *orderedmap.OrderedMap[string, string] `json:"probes,omitempty"`
}

// probe tries to reach the external services and reports "ok", "skipped" or the error of each.
func probe(ctx context.Context, c config.Config) (*orderedmap.OrderedMap[string, string], bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	results := orderedmap.New[string, string]()
	ok := true
	if err := db.DialDatabase(ctx, c.Database); err != nil {
		results.Set("database", err.Error())
		ok = false
	} else {
		results.Set("database", "ok")
	}
	if !c.Redis.Configured() {
		results.Set("redis", "skipped")
		return results, ok
	}
	client := db.NewRedisClient(c.Redis)
	defer client.Close()
	if err := db.Ping(ctx, client); err != nil {
		results.Set("redis", err.Error())
		ok = false
	} else {
		results.Set("redis", "ok")
	}
	return results, ok
}

func (c *CheckCmd) Run(rc *runContext) error {
	handler := rc.configHandler()
	cfg, err := handler.Load()
	if err != nil {
		return err
	}
	output := checkOutput{Report: config.Check(cfg), Files: handler.Files()}
	valid := output.Valid
	if c.Probe {
		probes, reachable := probe(context.Background(), cfg)
		output.Probes = probes
		valid = valid && reachable
	}
	encoder := json.NewEncoder(rc.stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return err
	}
	if !valid {
		return fmt.Errorf("%w, see the report above", mperrors.ErrInvalidConfig)
	}
	return nil
}

type RenderCmd struct{}

func (c *RenderCmd) Run(rc *runContext) error {
	cfg, err := rc.configHandler().Config()
	if err != nil {
		return err
	}
	output, err := config.SettingsYAML(cfg)
	if err != nil {
		return err
	}
	_, err = rc.stdout.Write(output)
	return err
}

type VersionCmd struct{}

func (c *VersionCmd) Run(rc *runContext) error {
	v := version()
	if v == "" {
		v = "unknown"
	}
	_, err := fmt.Fprintln(rc.stdout, v)
	return err
}
