// Package pkg holds the libraries behind shannonfano, a Shannon–Fano code
// engine.
//
// # Overview
//
// Given symbols with probabilities, or free text whose character
// frequencies define them, shannonfano builds a prefix code by recursive
// bipartition: the working set is sorted by probability and split where the
// two halves are closest to equal mass, the heavier half takes a 1 and the
// lighter a 0, and both halves are split again until every symbol stands
// alone.
//
// # Data Flow
//
//	NAME=PROB arguments / alphabet file        free text
//	         ↓                                     ↓
//	    [alphabet] (validate)              [frequency] (count)
//	         ↘                                   ↙
//	                 [fano] (partition, codes)
//	                          ↓
//	                [metrics] (entropy, length)
//	                          ↓
//	      [pipeline] (validation, cache, result)
//	                          ↓
//	     CLI table / JSON / code tree SVG / HTTP API
//
// # Packages
//
// Domain logic:
//   - [rational]: exact fractions for probability comparison
//   - [alphabet]: symbols, validation and NAME=PROB parsing
//   - [frequency]: character frequencies of text
//   - [fano]: the partition engine, code tables, encoding, code trees
//   - [metrics]: entropy, average code length, efficiency, rounding
//
// Orchestration and infrastructure:
//   - [pipeline]: the Runner shared by CLI and API
//   - [cache]: file, memory, redis and null result caches
//   - [config]: the TOML configuration file
//   - [io]: alphabet and code table files
//   - [render/codetree]: Graphviz rendering of code trees
//   - [observability]: hooks for metrics backends
//   - [errors]: structured error codes
//
// [rational]: github.com/matzehuels/shannonfano/pkg/rational
// [alphabet]: github.com/matzehuels/shannonfano/pkg/alphabet
// [frequency]: github.com/matzehuels/shannonfano/pkg/frequency
// [fano]: github.com/matzehuels/shannonfano/pkg/fano
// [metrics]: github.com/matzehuels/shannonfano/pkg/metrics
// [pipeline]: github.com/matzehuels/shannonfano/pkg/pipeline
// [cache]: github.com/matzehuels/shannonfano/pkg/cache
// [config]: github.com/matzehuels/shannonfano/pkg/config
// [io]: github.com/matzehuels/shannonfano/pkg/io
// [render/codetree]: github.com/matzehuels/shannonfano/pkg/render/codetree
// [observability]: github.com/matzehuels/shannonfano/pkg/observability
// [errors]: github.com/matzehuels/shannonfano/pkg/errors
package pkg
