// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export captures the manuscript into a paginated PDF artifact.
//
// The pipeline is a single-flight state machine: Idle -> Requested ->
// Capturing -> Done|Failed -> Idle. The manuscript is read exactly once per
// export, after a short settle delay, then rasterized at capture scale and
// embedded full-bleed into a single PDF page of A4 width whose height
// follows the raster's aspect ratio.
//
// # Key Types
//
//   - Pipeline: the single-flight export state machine
//   - Options: output directory, artifact filename, settle delay
//   - ManuscriptRenderer: word-wrapped raster layout
//   - PDFPackager: single-page PDF packaging
//
// # Usage
//
// Run an export:
//
//	pipeline := export.New(export.Config{
//	    Source: document,
//	    Ledger: transcript,
//	    Bus:    events,
//	})
//	if pipeline.Request() {
//	    // artifact written, or failure surfaced as a transcript advisory
//	}
//
// A Request returns false when the manuscript is blank or another export is
// already in flight; both rejections are silent.
package export
