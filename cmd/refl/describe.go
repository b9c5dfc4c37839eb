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
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/refl/apis"
	"dirpx.dev/refl/mngr"
)

func newDescribeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "describe [type...]",
		Short: "Describe registered types",
		Long:  "Print the descriptor table of each named type, or of every registered type when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := a.m.TypeIDs()
			if len(args) > 0 {
				ids = ids[:0:0]
				for _, name := range args {
					id, err := a.lookup(name)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
			}

			descs := make([]mngr.Description, 0, len(ids))
			for _, id := range ids {
				d, err := a.m.Describe(id)
				if err != nil {
					return err
				}
				descs = append(descs, d)
			}
			return writeDescriptions(cmd.OutOrStdout(), output, descs)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, yaml or dump")
	return cmd
}

func writeDescriptions(w io.Writer, format string, descs []mngr.Description) error {
	switch format {
	case "text":
		for _, d := range descs {
			writeText(w, d)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(descs); err != nil {
			return err
		}
		return enc.Close()
	case "dump":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(w, descs)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, d mngr.Description) {
	fmt.Fprintf(w, "%s (id %d, size %d, align %d)\n", displayName(d.Name), d.ID, d.Size, d.Align)
	if len(d.Bases) > 0 {
		fmt.Fprintln(w, "  bases:")
		for _, b := range d.Bases {
			fmt.Fprintf(w, "    %s +%d\n", b.Name, b.Offset)
		}
	}
	if len(d.Fields) > 0 {
		fmt.Fprintln(w, "  fields:")
		for _, f := range d.Fields {
			var flags []string
			if f.Fixed {
				flags = append(flags, "fixed")
			}
			if f.Const {
				flags = append(flags, "const")
			}
			fmt.Fprintf(w, "    %s %s @%d", f.Name, f.Type, f.Offset)
			if len(flags) > 0 {
				fmt.Fprintf(w, " [%s]", strings.Join(flags, ","))
			}
			fmt.Fprintln(w)
		}
	}
	if len(d.Methods) > 0 {
		fmt.Fprintln(w, "  methods:")
		for _, md := range d.Methods {
			fmt.Fprintf(w, "    %s\n", md)
		}
	}
	if len(d.Constructors) > 0 {
		fmt.Fprintln(w, "  constructors:")
		for _, c := range d.Constructors {
			fmt.Fprintf(w, "    (%s)\n", strings.Join(c, ", "))
		}
	}
	if len(d.Enumerators) > 0 {
		fmt.Fprintln(w, "  enumerators:")
		for _, e := range d.Enumerators {
			fmt.Fprintf(w, "    %s = %d\n", e.Name, e.Value)
		}
	}
}

func displayName(name string) string {
	if name == apis.GlobalTypeName {
		return name + " (free functions)"
	}
	return name
}
