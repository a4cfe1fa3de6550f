// Copyright 2025 the jshound authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jshound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"no input", Config{}, ErrNoInput},
		{"both inputs", Config{URL: "https://a.com/x.js", InputFile: "urls.txt"}, ErrBothInputs},
		{"url only", Config{URL: "https://a.com/x.js"}, nil},
		{"file only", Config{InputFile: "urls.txt"}, nil},
		{"negative workers", Config{URL: "https://a.com/x.js", Workers: -1}, ErrBadWorkers},
		{"negative retries", Config{URL: "https://a.com/x.js", Retries: -2}, ErrBadRetries},
		{"bad format", Config{URL: "https://a.com/x.js", Format: "xml"}, ErrBadFormat},
		{"json format", Config{URL: "https://a.com/x.js", Format: FormatJSON}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{URL: "https://a.com/x.js"}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestConfigValidateKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		URL:       "https://a.com/x.js",
		Timeout:   3 * time.Second,
		Workers:   12,
		UserAgent: "custom/2.0",
		Format:    FormatJSON,
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 12, cfg.Workers)
	assert.Equal(t, "custom/2.0", cfg.UserAgent)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestConfigValidateCapsWorkers(t *testing.T) {
	cfg := Config{URL: "https://a.com/x.js", Workers: 500}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, MaxWorkers, cfg.Workers)
}
