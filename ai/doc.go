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


// Package ai provides abstractions for the AI services used in Gaceta.
//
// This package defines interfaces for text embeddings, article rewriting and
// translation. It follows the dependency inversion principle, allowing the
// ingestion orchestrator and semantic index to depend on abstractions rather
// than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - Generator: rewrites feed entries into original articles, refines and
//     audits existing content
//   - Translator: translates text, backing the generation fallback path
//   - AIProvider: aggregates the services for convenient initialization
//
// # The degradation contract
//
// Generator.GenerateArticle never turns an ordinary provider failure into an
// error. Instead it returns the input title and summary unchanged; callers
// detect this with GeneratedArticle.Degraded and take the translation
// fallback. This keeps one entry's bad generation from aborting a whole
// ingestion run.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in ai/openai return interface types to keep callers
// decoupled from the concrete implementations; mock constructors return
// concrete types so tests can inject behavior and assert call counts.
package ai
