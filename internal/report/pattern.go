// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package report

// Pattern identifies the bug pattern a diagnostic reports.
type Pattern uint8

//go:generate go tool stringer -type Pattern -linecomment
const (
	// BloatedAssignmentScope is a store that could move into the only block using it.
	BloatedAssignmentScope Pattern = iota // BAS_BLOATED_ASSIGNMENT_SCOPE
	// NonCollectionMethodUse is a call of a pre-collections Hashtable or Vector method.
	NonCollectionMethodUse // NCMU_NON_COLLECTION_METHOD_USE
)
