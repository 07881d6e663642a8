// Package concepts answers "explain this concept" requests from the editor.
//
// The editor shows a fixed set of graph-theory topics ([Topics]). Clicking
// one posts {"message": topic} to the API, which hands it to an [Explainer]:
//
//   - [EchoExplainer] acknowledges the message without a model
//   - [GeminiExplainer] asks Gemini for a structured explanation that
//     includes a Mermaid diagram the editor can load directly
//   - [CachedExplainer] memoizes any Explainer in a cache.Cache
//
// [Service] wraps an Explainer with validation, timing and the response
// envelope the editor expects. [Client] is the HTTP counterpart used by the
// CLI.
package concepts
