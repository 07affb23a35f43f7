/*
 * Copyright 2022 ByteDance Inc.
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

package revec

// Reason is why rec() gave up on a group. It is never returned to the
// caller of TryRevectorize -- BuildTree's only externally visible outcome
// is (*PackNode, bool) -- but every failure exit routes through trace()
// with one of these so a trace-enabled run can be diagnosed after the
// fact instead of just reporting "no fusion happened".
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonDepthExceeded
	ReasonCycleWithoutPhi
	ReasonMixedBasicBlock
	ReasonMixedOperator
	ReasonAllConstant
	ReasonUnsupportedOpcode
	ReasonPartialOverlap
	ReasonExtractMismatch
	ReasonNonSimd128Load
	ReasonNonContinuous
	ReasonUnsupportedLoadTransform
	ReasonAliasingLoad
	ReasonChildFailed
	ReasonOK
)

var _reasonNames = map[Reason]string{
	ReasonNone:                     "none",
	ReasonDepthExceeded:            "depth exceeded",
	ReasonCycleWithoutPhi:          "cycle without phi at top",
	ReasonMixedBasicBlock:          "mixed basic blocks",
	ReasonMixedOperator:            "mixed operators",
	ReasonAllConstant:              "all-constant group",
	ReasonUnsupportedOpcode:        "unsupported opcode",
	ReasonPartialOverlap:           "partial-overlap memo collision",
	ReasonExtractMismatch:          "non-matching ExtractF128 sources or non-adjacent lanes",
	ReasonNonSimd128Load:           "non-simd128 load",
	ReasonNonContinuous:            "non-continuous load addresses",
	ReasonUnsupportedLoadTransform: "unsupported LoadTransform variant",
	ReasonAliasingLoad:             "aliasing load (side-effect dependency on a stacked node)",
	ReasonChildFailed:              "child recursion failure",
	ReasonOK:                       "packed",
}

func (self Reason) String() string {
	if s, ok := _reasonNames[self]; ok {
		return s
	}
	return "unknown reason"
}
