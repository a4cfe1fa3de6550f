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

package store

// Run records one completed extraction batch.
type Run struct {
	ID         uint  `gorm:"primaryKey"`
	StartedAt  int64 `gorm:"not null"` // Unix timestamp
	FinishedAt int64 `gorm:"not null"` // Unix timestamp
	Sources    int   `gorm:"not null"`
	Successful int   `gorm:"not null"`
	Failed     int   `gorm:"not null"`
	UniqueURLs int   `gorm:"not null"`
	CreatedAt  int64 `gorm:"autoCreateTime"`
}

// SeenURL tracks every URL ever reported, for deduplication across runs.
type SeenURL struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"uniqueIndex;not null"`
	RunID     uint   `gorm:"index;not null"` // run that first reported it
	CreatedAt int64  `gorm:"autoCreateTime"`
}
