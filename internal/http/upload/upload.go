package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
)

const maxMemory = 10 << 20

var ErrMissingFile = errors.New("file field is required")

// File returns the "file" part of a multipart upload and its sheet format.
// An explicit "format" field wins over the file extension.
func File(r *http.Request) (multipart.File, importer.Format, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, "", fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", ErrMissingFile
	}

	format := importer.FormatFromFilename(header.Filename)

	if f := r.FormValue("format"); f != "" {
		format, err = importer.ParseFormat(f)
		if err != nil {
			file.Close()
			return nil, "", err
		}
	}

	return file, format, nil
}
