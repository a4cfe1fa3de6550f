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

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// RecordRun persists the statistics of a completed batch.
func (s *Store) RecordRun(startedAt, finishedAt time.Time, sources, successful, failed, uniqueURLs int) (*Run, error) {
	run := Run{
		StartedAt:  startedAt.Unix(),
		FinishedAt: finishedAt.Unix(),
		Sources:    sources,
		Successful: successful,
		Failed:     failed,
		UniqueURLs: uniqueURLs,
	}
	if err := s.db.Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// FilterUnseen returns the subset of urls never reported by any previous run
// and marks them as seen under runID. Calling it again with the same URLs
// returns nothing.
func (s *Store) FilterUnseen(runID uint, urls []string) ([]string, error) {
	var fresh []string
	for _, u := range urls {
		var existing SeenURL
		result := s.db.Where("url = ?", u).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := s.db.Create(&SeenURL{URL: u, RunID: runID}).Error; err != nil {
				return nil, err
			}
			fresh = append(fresh, u)
			continue
		}
		if result.Error != nil {
			return nil, result.Error
		}
	}
	return fresh, nil
}

// SeenCount returns how many distinct URLs have ever been recorded.
func (s *Store) SeenCount() (int64, error) {
	var count int64
	if err := s.db.Model(&SeenURL{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RecentRuns returns up to limit runs, most recent first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	if err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
