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

package manifest

import (
	"fmt"
	"slices"
)

// Parameters records the settings that produced a manifest. Two manifests
// are only comparable when their parameters agree.
type Parameters struct {
	// Algorithm is the registered hash algorithm name.
	Algorithm string

	// CombineMode names how per-file digests were folded into the key
	// ("sequential" or "multiply-mix").
	CombineMode string

	// MixVersion identifies the multiply-mix construction. Empty for
	// sequential keys.
	MixVersion string

	AllowSymlinks  bool
	IgnoreGitPaths bool
	IgnorePaths    []string
}

const (
	paramAlgorithm      = "algorithm"
	paramCombineMode    = "combine_mode"
	paramMixVersion     = "mix_version"
	paramAllowSymlinks  = "allow_symlinks"
	paramIgnoreGitPaths = "ignore_git_paths"
	paramIgnorePaths    = "ignore_paths"
)

// Map returns the parameters as a map suitable for persistence.
//
// Optional entries are omitted when empty. The returned map owns its slices.
func (p Parameters) Map() map[string]any {
	m := map[string]any{
		paramAlgorithm:      p.Algorithm,
		paramCombineMode:    p.CombineMode,
		paramAllowSymlinks:  p.AllowSymlinks,
		paramIgnoreGitPaths: p.IgnoreGitPaths,
	}
	if p.MixVersion != "" {
		m[paramMixVersion] = p.MixVersion
	}
	if len(p.IgnorePaths) > 0 {
		m[paramIgnorePaths] = slices.Clone(p.IgnorePaths)
	}
	return m
}

// Equal reports whether both parameter sets describe the same hashing run.
func (p Parameters) Equal(other Parameters) bool {
	return p.Algorithm == other.Algorithm &&
		p.CombineMode == other.CombineMode &&
		p.MixVersion == other.MixVersion &&
		p.AllowSymlinks == other.AllowSymlinks &&
		p.IgnoreGitPaths == other.IgnoreGitPaths &&
		slices.Equal(p.IgnorePaths, other.IgnorePaths)
}

// ParametersFromMap is the inverse of Parameters.Map.
//
// Unknown keys are ignored so manifests written by newer versions still load.
func ParametersFromMap(m map[string]any) (Parameters, error) {
	e := NewParamExtractor(m)

	var (
		p   Parameters
		err error
	)
	if p.Algorithm, err = e.GetString(paramAlgorithm); err != nil {
		return Parameters{}, err
	}
	if p.CombineMode, err = e.GetString(paramCombineMode); err != nil {
		return Parameters{}, err
	}
	if p.MixVersion, err = e.GetStringOptional(paramMixVersion); err != nil {
		return Parameters{}, err
	}
	if p.AllowSymlinks, err = e.GetBoolOptional(paramAllowSymlinks, false); err != nil {
		return Parameters{}, err
	}
	if p.IgnoreGitPaths, err = e.GetBoolOptional(paramIgnoreGitPaths, false); err != nil {
		return Parameters{}, err
	}
	if p.IgnorePaths, err = e.GetStringSlice(paramIgnorePaths); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// ParamExtractor reads typed values out of a decoded parameter map.
type ParamExtractor struct {
	params map[string]any
}

func NewParamExtractor(params map[string]any) *ParamExtractor {
	return &ParamExtractor{params: params}
}

// GetString returns a required string parameter.
func (e *ParamExtractor) GetString(key string) (string, error) {
	value, exists := e.params[key]
	if !exists {
		return "", fmt.Errorf("parameter %q not found", key)
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q is not a string (got %T)", key, value)
	}
	return str, nil
}

// GetStringOptional returns "" when the parameter is missing.
func (e *ParamExtractor) GetStringOptional(key string) (string, error) {
	if !e.Has(key) {
		return "", nil
	}
	return e.GetString(key)
}

// GetBoolOptional returns defaultValue when the parameter is missing.
func (e *ParamExtractor) GetBoolOptional(key string, defaultValue bool) (bool, error) {
	value, exists := e.params[key]
	if !exists {
		return defaultValue, nil
	}

	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q is not a bool (got %T)", key, value)
	}
	return b, nil
}

// GetStringSlice returns nil for a missing parameter. Decoders hand back
// []any for arrays, so both []string and []any of strings are accepted.
func (e *ParamExtractor) GetStringSlice(key string) ([]string, error) {
	value, exists := e.params[key]
	if !exists {
		return nil, nil
	}

	switch v := value.(type) {
	case []string:
		return slices.Clone(v), nil
	case []any:
		result := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %q[%d] is not a string (got %T)", key, i, item)
			}
			result = append(result, str)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("parameter %q is not a string slice (got %T)", key, value)
	}
}

func (e *ParamExtractor) Has(key string) bool {
	_, exists := e.params[key]
	return exists
}
