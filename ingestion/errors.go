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


package ingestion

import "errors"

var (
	// ErrArticleRepositoryRequired indicates the article repository was not provided.
	ErrArticleRepositoryRequired = errors.New("article repository is required")

	// ErrIndexRequired indicates the semantic index was not provided.
	ErrIndexRequired = errors.New("semantic index is required")

	// ErrAIProviderRequired indicates the AI provider was not provided.
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrFetchFailed indicates that a feed could not be fetched or parsed.
	ErrFetchFailed = errors.New("feed fetch failed")
)
