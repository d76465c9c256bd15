// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggested fixes. Issue holds longer Markdown guides that the CLI renders
// with glamour below an error.
package issue
