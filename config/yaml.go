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

package config

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dirpx.dev/refl/apis"
)

// ErrDecode is returned when a YAML document cannot be decoded.
var ErrDecode = errors.New("refl(config): cannot decode yaml")

// file mirrors apis.Config for YAML documents. Pointer fields distinguish
// "absent" (keep default) from an explicit zero.
type file struct {
	FullPkgPath   *bool   `yaml:"full_pkg_path"`
	MaxUnwrap     *int    `yaml:"max_unwrap"`
	MallocLimit   *uint64 `yaml:"malloc_limit"`
	MaxAlignment  *uint64 `yaml:"max_alignment"`
	RecoverPanics *bool   `yaml:"recover_panics"`
}

// LoadYAML builds a Config from a YAML document. Keys that are absent keep
// their defaults; extra opts are applied after the document.
func LoadYAML(data []byte, opts ...Option) (apis.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return NewConfig(append(f.options(), opts...)...), nil
}

// ReadYAML is LoadYAML over a reader.
func ReadYAML(r io.Reader, opts ...Option) (apis.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return LoadYAML(data, opts...)
}

func (f file) options() []Option {
	var opts []Option
	if f.FullPkgPath != nil {
		opts = append(opts, WithFullPkgPath(*f.FullPkgPath))
	}
	if f.MaxUnwrap != nil {
		opts = append(opts, WithMaxUnwrap(*f.MaxUnwrap))
	}
	if f.MallocLimit != nil {
		opts = append(opts, WithMallocLimit(*f.MallocLimit))
	}
	if f.MaxAlignment != nil {
		opts = append(opts, WithMaxAlignment(*f.MaxAlignment))
	}
	if f.RecoverPanics != nil {
		opts = append(opts, WithRecoverPanics(*f.RecoverPanics))
	}
	return opts
}
