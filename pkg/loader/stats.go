/*
	Copyright 2023 Google Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

		https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package loader

import (
	"fmt"
	"strings"
	"time"
)

// WorkerStats describes the work done by one insert worker.
type WorkerStats struct {
	Instance uint
	// WorkDuration is the time spent inserting words; StageDuration also
	// includes the time spent waiting for batches.
	WorkDuration, StageDuration time.Duration
	Words, Batches              uint
}

func (ws *WorkerStats) label() string {
	return fmt.Sprintf("insert (%d)", ws.Instance)
}

func (ws *WorkerStats) detailRow(labelCols int) string {
	formatStr := fmt.Sprintf("%%-%ds: %%d words in %%d batches, total %%s, work %%s", labelCols)
	row := fmt.Sprintf(formatStr, ws.label(), ws.Words, ws.Batches, ws.StageDuration, ws.WorkDuration)
	if ws.Words > 0 {
		row += fmt.Sprintf(" (%s/word)", ws.WorkDuration/time.Duration(ws.Words))
	}
	return row
}

// Stats describes a completed Load.
type Stats struct {
	WallDuration time.Duration
	// ProducerDuration is the time spent reading and batching words,
	// excluding the time spent waiting for a worker to accept a batch.
	ProducerDuration time.Duration
	Words, Batches   uint
	Workers          []*WorkerStats
}

func (s *Stats) String() string {
	if s == nil {
		return ""
	}
	labelCols := len("read")
	for _, ws := range s.Workers {
		labelCols = max(labelCols, len(ws.label()))
	}
	ret := []string{
		fmt.Sprintf("Load wall time: %s", s.WallDuration),
		fmt.Sprintf("  %-*s: %d words in %d batches, work %s", labelCols, "read", s.Words, s.Batches, s.ProducerDuration),
	}
	for _, ws := range s.Workers {
		ret = append(ret, "  "+ws.detailRow(labelCols))
	}
	return strings.Join(ret, "\n")
}
