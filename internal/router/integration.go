// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"charter-scan/internal/preprocessors"
)

// RegisterDefaultExtractors registers the built-in extractors
func RegisterDefaultExtractors(router *FileRouter) {
	router.RegisterExtractor("pdf", func(config Config) preprocessors.Extractor {
		if !config.PDFEnabled {
			return nil
		}
		e := preprocessors.NewPDFExtractor(config.PDF)
		if router.observer != nil {
			e.SetObserver(router.observer)
		}
		return e
	})

	router.RegisterExtractor("plaintext", func(config Config) preprocessors.Extractor {
		if !config.PlainTextEnabled {
			return nil
		}
		e := preprocessors.NewPlainTextExtractor(config.NormalizeUnicode)
		if router.observer != nil {
			e.SetObserver(router.observer)
		}
		return e
	})
}
