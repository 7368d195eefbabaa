// Copyright 2025 Gaceta Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package semindex

import "errors"

var (
	// ErrDimensionMismatch indicates an embedding whose dimension differs
	// from the index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidDimension indicates a non-positive index dimension.
	ErrInvalidDimension = errors.New("invalid index dimension")

	// ErrNilEmbedder indicates that the index was opened without an embedder.
	ErrNilEmbedder = errors.New("nil embedder")

	// ErrCorruptSnapshot indicates that a persisted snapshot could not be
	// decoded.
	ErrCorruptSnapshot = errors.New("corrupt index snapshot")
)
