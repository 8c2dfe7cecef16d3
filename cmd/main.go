// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Command charter-scan scans a directory of committee charters for governance
// keywords and writes a keyword hit table and a per-document summary table.
//
// Usage:
//
//	charter-scan scan [dir]
//	charter-scan taxonomy [--export file]
//	charter-scan probes
//	charter-scan version
package main

func main() {
	Execute()
}
