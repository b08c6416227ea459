// Package validation provides common validation utilities for the goasync library.
package validation
