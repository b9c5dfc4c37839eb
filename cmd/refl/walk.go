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
	"reflect"

	"github.com/spf13/cobra"

	"dirpx.dev/refl/mngr"
	"dirpx.dev/refl/object"
)

func newWalkCmd(a *app) *cobra.Command {
	var values bool
	cmd := &cobra.Command{
		Use:   "walk type",
		Short: "Walk a type hierarchy",
		Long:  "List a type and its bases in search order, then every field reachable from it. With --values a default instance is constructed and its field values are printed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "types:")
			a.m.ForEachType(id, func(t mngr.Type) {
				fmt.Fprintf(w, "  %s\n", t.Name)
			})

			if !values {
				fmt.Fprintln(w, "fields:")
				a.m.ForEachField(id, func(t mngr.Type, f mngr.FieldRef) {
					fmt.Fprintf(w, "  %s.%s %s\n", t.Name, f.Name, a.m.Types().Resolve(f.Field.Type))
				})
				return nil
			}

			obj := a.m.New(id, nil, nil)
			if obj.IsNil() {
				return fmt.Errorf("%s has no default constructor", args[0])
			}
			defer a.m.Delete(obj.AsConst())

			fmt.Fprintln(w, "values:")
			for _, v := range a.m.RVars(obj.AsConst()) {
				fmt.Fprintf(w, "  %s.%s = %s\n", v.Type.Name, v.Field.Name, a.format(v.Var))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&values, "values", false, "construct an instance and print its field values")
	return cmd
}

// format renders the value behind obj when its type has a Go type.
func (a *app) format(obj object.ConstObjectPtr) string {
	ti, ok := a.m.TypeInfo(obj.TypeID())
	if !ok || ti.GoType == nil {
		return "?"
	}
	return fmt.Sprintf("%#v", reflect.NewAt(ti.GoType, obj.Ptr()).Elem().Interface())
}
