package byteguard_test

import (
	"archive/zip"
	"bytes"
	"fmt"

	byteguard "github.com/ByteGuard-HQ/byteguard-file-validator"
)

func ExamplePreflightArchive() {
	// Forge an archive whose central directory declares a 10GB entry packed
	// into a few hundred bytes. Preflight reads only the metadata, so the
	// bomb is rejected without decompressing anything.
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	fw, _ := w.CreateRaw(&zip.FileHeader{
		Name:               "word/document.xml",
		Method:             zip.Deflate,
		UncompressedSize64: 10 << 30,
	})
	fw.Write(make([]byte, 300))
	w.Close()

	err := byteguard.PreflightArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		byteguard.DefaultPreflightConfig())

	fmt.Println(byteguard.GetErrorType(err))
	// Output: limit
}

func ExampleBuilder() {
	validator, err := byteguard.ForOfficeDocuments().
		MaxSize(10 * byteguard.MB).
		MaxArchiveEntries(2000).
		Build()
	if err != nil {
		fmt.Println("bad constraints:", err)
		return
	}

	err = validator.ValidateBytes([]byte("#!/bin/sh"), "install.sh")
	fmt.Println(byteguard.GetErrorType(err))
	// Output: extension
}

func ExamplePreflightConfig() {
	// NoLimit disables an individual check; the rest stay enforced
	cfg := byteguard.DefaultPreflightConfig()
	cfg.TotalUncompressedSizeLimit = byteguard.NoLimit

	fmt.Println(cfg.Validate())
	// Output: <nil>
}
