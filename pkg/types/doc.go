// SPDX-License-Identifier: MPL-2.0

// Package types defines the small value types shared by the scanner, the
// registry and the listing renderer. Each type validates itself and reports
// failures as typed errors that unwrap to a package sentinel.
//
// This package is a leaf dependency: it imports only the standard library.
package types
