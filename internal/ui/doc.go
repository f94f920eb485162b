// Package ui contains the Fyne-based desktop user interface for the
// application. It wires the package form to the download service and renders
// tasks, notifications, and settings. All UI strings are localized via
// Localization. Field validation lives here: the core fetcher trusts that
// publisher, extension and version are non-empty.
package ui
