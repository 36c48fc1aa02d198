// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package recommend implements the heuristic place scorer for
// map-sourced candidates.
//
// # Architecture
//
// Each candidate place receives five independent sub-scores in [0,1]:
//
//   - Popularity: presence of community-curated tags (Wikipedia,
//     website, description) as a notability proxy
//   - Interest match: keyword and substring overlap between the user's
//     interests and the place category
//   - Season fit: calendar-month suitability per category family
//   - Distance: coarse degree-distance buckets from the search center
//   - Diversity: greedy per-category decay over input order
//
// The composite is a fixed weighted sum. The scorer needs no trained
// model and no review data, so it ranks any candidate set the map layer
// produces, including cold-start regions with zero interaction history.
//
// # Design Principles
//
//   - Deterministic: identical inputs and month produce identical output
//   - Explainable: every result retains its per-factor breakdown
//   - Injectable: lookup tables and the clock are construction-time
//     configuration, never package globals
//
// # Thread Safety
//
// A Scorer is immutable after construction and safe for concurrent use.
package recommend
