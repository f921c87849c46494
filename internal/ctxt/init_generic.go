// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package ctxt

import (
	_ "github.com/fourslice/tesseract/driver/cpu"
	_ "github.com/fourslice/tesseract/driver/webgpu"
)

func init() {
	if err := loadDriver("webgpu"); err != nil {
		// Fall back to any registered driver (the CPU
		// reference backend, in practice).
		if err = loadDriver(""); err != nil {
			panic(err)
		}
	}
}
