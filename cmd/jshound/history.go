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

package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/jshound/jshound/internal/store"
)

func runHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", "", "Sqlite history database path")
	limit := fs.Int("n", 20, "Number of runs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return fmt.Errorf("--db is required")
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.RecentRuns(*limit)
	if err != nil {
		return err
	}
	seen, err := st.SeenCount()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	fmt.Printf("%-20s  %8s  %8s  %8s  %8s\n", "STARTED", "SOURCES", "OK", "FAILED", "UNIQUE")
	for _, r := range runs {
		fmt.Printf("%-20s  %8d  %8d  %8d  %8d\n",
			time.Unix(r.StartedAt, 0).Format("2006-01-02 15:04:05"),
			r.Sources, r.Successful, r.Failed, r.UniqueURLs)
	}
	fmt.Printf("\n%d distinct URLs recorded in total.\n", seen)
	return nil
}
