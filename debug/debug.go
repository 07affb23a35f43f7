/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package debug

import "github.com/vecgraph/revectorizer/internal/revec"

// A Stats records statistics about a completed revectorization pass.
type Stats struct {
	Arena ArenaStats
}

// An ArenaStats records statistics about the pass's PackNode arena.
type ArenaStats struct {
	Live int
}

// GetStats returns statistics about d's pass-local allocator. Callers
// typically fetch this right after Revectorizer.TryRevectorize returns,
// before the next pass resets the arena.
func GetStats(d *revec.Revectorizer) Stats {
	return Stats{
		Arena: ArenaStats{
			Live: d.Arena().Count(),
		},
	}
}
