// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package methane

import "fmt"

// FormatError reports a structurally invalid classifier database. It is fatal:
// an invalid database makes every downstream classification meaningless, so the
// run aborts instead of degrading.
type FormatError struct {
	Source string // file name or reader label
	Line   int    // 1-based line number, 0 when the problem is file-wide
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("database %s: line %d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("database %s: %s", e.Source, e.Msg)
}

// FileError reports a single input profile file that could not be processed.
// Callers skip the file with a warning and continue with the remaining files;
// the run as a whole fails only if no file succeeds.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("input file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
