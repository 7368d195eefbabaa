// Package openai implements the ai service interfaces against any
// OpenAI-compatible API (Ollama, LocalAI, vLLM, OpenAI itself).
//
// All services share one Config. The generator and translator ride the chat
// completion endpoint; the embedder rides the embeddings endpoint through
// langchaingo's embeddings wrapper.
package openai
