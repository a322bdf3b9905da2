// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/params"
)

// analysisCacheSize bounds the process-wide JUMPDEST analysis cache. One
// entry costs 8 bytes per JUMPDEST in the code; this is generous enough to hold
// every frequently-called contract across many blocks without growing
// unboundedly over the life of a long-running process.
const analysisCacheSize = 4096

// analysisCacheKey identifies one contract's analysis at one hardfork.
// Hardfork is part of the key, not just CodeHash, because a future fork
// could change which bytes are valid instruction boundaries (e.g. a new
// multi-byte opcode prefix); today's JUMPDEST bitmap happens to be
// fork-invariant, but the cache doesn't assume that will always hold.
type analysisCacheKey struct {
	CodeHash types.Hash
	Hardfork params.Hardfork
}

// analysisCache is the process-wide cache of jumpdest analyses, shared
// across every EVM instance and every call tree. It supplements (does not
// replace) Contract.jumpdests, which only lives for the duration of one
// top-level call's nested frames: analysisCache is what lets a contract
// called in one transaction skip re-analysis in the next.
var analysisCache, _ = lru.New[analysisCacheKey, []uint64](analysisCacheSize)

// cachedJumpdestPositions returns the sorted JUMPDEST offsets for code,
// computing and caching them under (codeHash, hf) on first use.
func cachedJumpdestPositions(codeHash types.Hash, hf params.Hardfork, code []byte) []uint64 {
	key := analysisCacheKey{CodeHash: codeHash, Hardfork: hf}
	if positions, ok := analysisCache.Get(key); ok {
		return positions
	}
	positions := jumpdestPositions(code)
	analysisCache.Add(key, positions)
	return positions
}

// codeAnalysisCache is the process-wide cache of CodeAnalysis results (the
// main interpreter's block-partitioned instruction stream, §4.1), separate
// from analysisCache above: the two back independent jump-validity
// mechanisms for the main and mini interpreters (§4.7), and must stay
// independent caches so a bug in one analysis can never mask itself by
// sharing storage with the other.
var codeAnalysisCache, _ = lru.New[analysisCacheKey, *CodeAnalysis](analysisCacheSize)

// cachedCodeAnalysis returns code's CodeAnalysis against table, computing
// and caching it under (codeHash, hf) on first use. table is only consulted
// on a cache miss: a cache hit from an ExtraEips-patched table is reused as
// described on Contract.codeAnalysis.
func cachedCodeAnalysis(codeHash types.Hash, hf params.Hardfork, code []byte, table *JumpTable) *CodeAnalysis {
	key := analysisCacheKey{CodeHash: codeHash, Hardfork: hf}
	if analysis, ok := codeAnalysisCache.Get(key); ok {
		return analysis
	}
	analysis := analyzeCode(code, table)
	codeAnalysisCache.Add(key, analysis)
	return analysis
}
