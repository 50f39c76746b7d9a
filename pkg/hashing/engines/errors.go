// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashengines

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes hashing errors. Every type denotes caller misuse or
// invalid configuration; none is transient.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeUnknownAlgorithm indicates a name that is not registered.
	ErrTypeUnknownAlgorithm

	// ErrTypeAlreadyFinalized indicates use of a session after Compute.
	ErrTypeAlreadyFinalized

	// ErrTypeTooManyContributions indicates more checksum contributions than
	// the declared count.
	ErrTypeTooManyContributions

	// ErrTypeIncompleteAggregation indicates a checksum computed before all
	// declared contributions arrived.
	ErrTypeIncompleteAggregation
)

func (e ErrorType) String() string {
	switch e {
	case ErrTypeUnknownAlgorithm:
		return "UnknownAlgorithm"
	case ErrTypeAlreadyFinalized:
		return "AlreadyFinalized"
	case ErrTypeTooManyContributions:
		return "TooManyContributions"
	case ErrTypeIncompleteAggregation:
		return "IncompleteAggregation"
	default:
		return "UnknownError"
	}
}

// HashError is returned by the registry, the algorithms and the checksums.
type HashError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Algorithm is the algorithm name involved. For ErrTypeUnknownAlgorithm
	// it is the exact name that failed to resolve.
	Algorithm string

	// Message is a human-readable description of what went wrong.
	Message string
}

func (e *HashError) Error() string {
	if e.Algorithm != "" {
		return fmt.Sprintf("%s: %s (algorithm: %q)", e.Type, e.Message, e.Algorithm)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewUnknownAlgorithmError reports that name is not registered. The supported
// names are listed in the message so a mistyped configuration value can be
// fixed directly.
func NewUnknownAlgorithmError(name string, supported []string) *HashError {
	return &HashError{
		Type:      ErrTypeUnknownAlgorithm,
		Algorithm: name,
		Message:   fmt.Sprintf("unsupported hash algorithm (supported: %s)", strings.Join(supported, ", ")),
	}
}

// NewAlreadyFinalizedError reports use of a finalized session.
func NewAlreadyFinalizedError(algorithm string) *HashError {
	return &HashError{
		Type:      ErrTypeAlreadyFinalized,
		Algorithm: algorithm,
		Message:   "hash already computed",
	}
}

// NewTooManyContributionsError reports a contribution beyond the declared count.
func NewTooManyContributionsError(algorithm string, count int) *HashError {
	return &HashError{
		Type:      ErrTypeTooManyContributions,
		Algorithm: algorithm,
		Message:   fmt.Sprintf("checksum sized for %d contributions received another", count),
	}
}

// NewIncompleteAggregationError reports a Compute call before every declared
// contribution arrived.
func NewIncompleteAggregationError(algorithm string, received, count int) *HashError {
	return &HashError{
		Type:      ErrTypeIncompleteAggregation,
		Algorithm: algorithm,
		Message:   fmt.Sprintf("checksum received %d of %d contributions", received, count),
	}
}

// IsType reports whether err, or any error it wraps, is a *HashError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var hashErr *HashError
	if errors.As(err, &hashErr) {
		return hashErr.Type == errType
	}
	return false
}
