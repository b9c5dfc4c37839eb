/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/refl"
	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/config"
	"dirpx.dev/refl/mngr"
)

// app carries the state shared by the subcommands.
type app struct {
	cfgPath string
	verbose bool
	m       *mngr.Manager
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "refl",
		Short:             "Inspect the demo reflection registry",
		Long:              "Build a demo registry (a Color enum and a shape hierarchy with a diamond) and inspect it through the reflection manager.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log registration at debug level")

	root.AddCommand(newDescribeCmd(a), newWalkCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if a.cfgPath != "" {
		f, err := os.Open(a.cfgPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if cfg, err = config.ReadYAML(f); err != nil {
			return err
		}
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	m := refl.Init(cfg, mngr.WithLogger(log))
	if err := registerDemo(m); err != nil {
		return fmt.Errorf("demo registry: %w", err)
	}
	a.m = m
	return nil
}

// lookup resolves a type name given on the command line.
func (a *app) lookup(name string) (apis.TypeID, error) {
	id, ok := a.m.Types().Lookup(name)
	if !ok {
		return apis.InvalidTypeID, fmt.Errorf("unknown type %q", name)
	}
	if _, ok := a.m.TypeInfo(id); !ok {
		return apis.InvalidTypeID, fmt.Errorf("type %q is not registered", name)
	}
	return id, nil
}
