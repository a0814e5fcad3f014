// Package docagent provides a small CLI toolkit for reading documentation
// with a large language model. It scrapes documentation pages, summarizes
// documentation trees, and runs an agent loop that lets the model decide
// whether to open another page, ask a clarifying question, or answer a task.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, htmltomarkdown/).
package docagent
