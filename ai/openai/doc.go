// Package openai implements the ai interfaces against OpenAI-compatible
// APIs via langchaingo. It works with any service exposing the OpenAI wire
// format: OpenAI itself, Ollama, LocalAI, vLLM and similar.
package openai
