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

package opts

// Options controls the SLP tree builder's legality search.
type Options struct {
	MaxRecursionDepth int
	Trace             bool
}

func (self *Options) DepthExceeded(depth int) bool {
	return self.MaxRecursionDepth > 0 && depth >= self.MaxRecursionDepth
}

func GetDefaultOptions() Options {
	return Options{
		MaxRecursionDepth: MaxRecursionDepth,
		Trace:             TraceRevectorize,
	}
}
