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

package options

import (
	"io"

	"github.com/gnodet/maven-build-cache-extension/pkg/logging"
)

// Observability holds the shared observability configuration for the CLI.
// Logger is configured from root flags; tracing is set up once in main and
// used through tracing.Run.
type Observability struct {
	Logger logging.Logger
}

// NewObservability returns an Observability whose logger writes to w.
func (o *RootOptions) NewObservability(w io.Writer) Observability {
	return Observability{
		Logger: o.NewLogger(w),
	}
}
