/*
 * Copyright 2021 ByteDance Inc.
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

package revectorizer

import (
	"fmt"
)

// GraphError occurs when the input function is not shaped the way
// TryRevectorize requires (a nil function, or a function with no basic
// blocks). It never reflects the SLP tree builder's own failure to find a
// legal packing, which is silent by design (see internal/revec.Reason).
type GraphError struct {
	Note string
}

func (self GraphError) Error() string {
	return fmt.Sprintf("revectorizer: invalid input graph: %s", self.Note)
}
