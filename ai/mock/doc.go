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


// Package mock provides test doubles for AI services.
//
// These mocks enable testing without external AI dependencies. All mocks
// implement their corresponding interfaces from the ai package and provide
// deterministic, configurable behavior through function fields.
//
// MockEmbedder produces deterministic pseudo-random vectors derived from the
// input text, so identical texts always embed identically within a test run.
// MockGenerator simulates a successful rewrite by default; use
// NewDegradedGenerator to simulate a provider that echoes its input.
// MockTranslator marks translated text with the target language code.
//
// Each mock tracks call counts and supports Reset() between test cases.
package mock
