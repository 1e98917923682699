// Package explainer provides a local, offline code explanation pipeline.
// It segments source code into explainable units, scores their structural
// complexity, and generates natural-language explanations per unit using a
// locally loaded model, without calling any remote inference API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, pattern/,
// infer/, pipeline/).
package explainer
