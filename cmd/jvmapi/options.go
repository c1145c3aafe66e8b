package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jvmapi/api"
	"github.com/dhamidi/jvmapi/classpath"
	"github.com/dhamidi/jvmapi/config"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type globalOptions struct {
	classpath  []string
	configFile string
	verbose    int

	config *config.Config
}

func (o *globalOptions) setup() error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	o.config = cfg
	commonlog.Configure(cfg.Log.Verbosity+o.verbose, nil)
	return nil
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.configFile != "" {
		return config.LoadFile(o.configFile)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.FindAndLoad(wd)
}

// entries prefers the command line classpath over the configured one.
func (o *globalOptions) entries() []string {
	var entries []string
	for _, cp := range o.classpath {
		entries = append(entries, classpath.Split(cp)...)
	}
	if len(entries) > 0 {
		return entries
	}
	return o.config.ClasspathEntries()
}

func (o *globalOptions) openProvider() (*api.Provider, error) {
	entries := o.entries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("no classpath: pass --classpath or list entries in %s", config.FileName)
	}
	repo, err := classpath.Open(entries...)
	if err != nil {
		return nil, fmt.Errorf("open classpath: %w", err)
	}
	return api.NewProvider(repo, api.WithAnnotations(o.config.Annotations)), nil
}

func closeProvider(p *api.Provider) {
	if err := p.Close(); err != nil {
		commonlog.GetLogger("jvmapi").Warningf("close provider: %s", err)
	}
}
