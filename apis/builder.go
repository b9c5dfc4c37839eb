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

package apis

// Builder composes the manager's collaborators from a Config.
type Builder interface {
	// BuildNames constructs the NameRegistry.
	BuildNames(cfg Config) NameRegistry
	// BuildTypes constructs the TypeRegistry.
	BuildTypes(cfg Config) TypeRegistry
	// BuildAllocator constructs the storage provider used by New/Delete.
	BuildAllocator(cfg Config) Allocator
	// BuildResolver constructs the Go type name resolver. It may consult
	// the TypeRegistry for explicitly bound names.
	BuildResolver(cfg Config, types TypeRegistry) Resolver
}
